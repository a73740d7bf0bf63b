package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/llehouerou/glimpse/internal/frame"
	"github.com/llehouerou/glimpse/internal/pipeline"
)

// Controller owns one pipeline session and reconciles its state with the
// host's intents. Update is meant to be called from the host loop only; the
// accessors are safe from any goroutine and never wait on the pipeline.
type Controller struct {
	// op serializes operations that call into the pipeline. mu guards the
	// fields below and is never held across a pipeline call.
	op sync.Mutex
	mu sync.RWMutex

	pipe   pipeline.Pipeline
	src    Source
	slot   *frame.Slot
	events *EventChannel
	log    *slog.Logger
	id     string
	tick   time.Duration

	state           State
	duration        time.Duration
	durationPending bool
	position        time.Duration
	volume          float64
	err             error
	closed          bool
	// eosPending records an end of stream seen while Stopped. It turns into
	// Ended on the next entry into Playing and is cleared by a seek.
	eosPending bool

	// Subscription bookkeeping. The epoch advances on every entry into
	// Playing; events stamped with an older epoch are never re-armed.
	epoch      uint64
	tickArmed  bool
	recvArmed  bool
	recvCtx    context.Context
	recvCancel context.CancelFunc
}

// New builds the pipeline for src and starts it. Capture sources start
// Playing; URL sources are prerolled and start Stopped.
func New(b pipeline.Builder, src Source, opts ...Option) (*Controller, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	c := &Controller{
		src:    src,
		slot:   &frame.Slot{},
		events: NewEventChannel(o.buffer),
		log:    o.logger.With("component", "playback", "session", id),
		id:     id,
		tick:   o.tick,
	}

	onSample := newSampleHandler(c.slot, c.events, c.log)

	var (
		p   pipeline.Pipeline
		err error
	)
	switch src.Kind {
	case SourceCapture:
		p, err = b.FromCapture(src.Node, onSample)
	default:
		p, err = b.FromURL(src.URL, onSample)
	}
	if err != nil {
		c.events.Close()
		return nil, err
	}
	c.pipe = p

	start, initial := p.Pause, StateStopped
	if src.IsCapture() {
		start, initial = p.Play, StatePlaying
	}
	if err := start(); err != nil {
		_ = p.Close()
		c.events.Close()
		return nil, wrapIfNot(err, pipeline.ErrStateChange)
	}

	c.state = initial
	c.durationPending = !src.IsCapture() && !src.Live
	if !src.IsCapture() {
		c.volume = 1 // playbin default
		if v, err := p.Volume(); err == nil {
			c.volume = v
		}
	}
	if initial == StatePlaying {
		c.openReceiveLocked()
	}

	c.log.Info("session started", "source", src.String(), "state", initial.String())
	return c, nil
}

// Frame returns a copy of the latest frame, or false before the first one.
func (c *Controller) Frame() (frame.Frame, bool) {
	return c.slot.Read()
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsPlaying reports whether the state is Playing.
func (c *Controller) IsPlaying() bool {
	return c.State() == StatePlaying
}

// Duration returns the latched duration, zero until resolved.
func (c *Controller) Duration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.duration
}

func (c *Controller) Position() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position
}

// Volume returns the last known linear volume in [0, 1].
func (c *Controller) Volume() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.volume
}

func (c *Controller) DurationSeconds() float64 { return c.Duration().Seconds() }
func (c *Controller) PositionSeconds() float64 { return c.Position().Seconds() }
func (c *Controller) DurationNanos() int64     { return c.Duration().Nanoseconds() }
func (c *Controller) PositionNanos() int64     { return c.Position().Nanoseconds() }

func (c *Controller) Source() Source { return c.src }

func (c *Controller) SessionID() string { return c.id }

// TickInterval returns the refresh period.
func (c *Controller) TickInterval() time.Duration { return c.tick }

// Err returns the error that ended the session, or nil.
func (c *Controller) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// DroppedEvents returns how many producer notifications were discarded.
func (c *Controller) DroppedEvents() uint64 {
	return c.events.Dropped()
}

// FramesWritten returns how many frames have been stored. Hosts can use it
// to tell whether the frame changed since they last drew it.
func (c *Controller) FramesWritten() uint64 {
	return c.slot.Writes()
}

// OverwrittenFrames returns how many frames were replaced before being read.
func (c *Controller) OverwrittenFrames() uint64 {
	return c.slot.Overwritten()
}

// SetVolume sets the linear volume, clamped to [0, 1]. No-op for capture.
func (c *Controller) SetVolume(v float64) error {
	c.op.Lock()
	defer c.op.Unlock()
	if c.src.IsCapture() || c.isClosed() {
		return nil
	}
	if math.IsNaN(v) {
		v = 0
	}
	v = max(0, min(1, v))
	if err := c.pipe.SetVolume(v); err != nil {
		return err
	}

	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()
	return nil
}

// Seek issues a flushing seek. No-op for capture. A successful seek from
// Ended resumes Playing; the host should then call Subscribe.
func (c *Controller) Seek(t pipeline.SeekTarget) error {
	c.op.Lock()
	defer c.op.Unlock()
	if c.src.IsCapture() || c.isClosed() {
		return nil
	}
	if err := c.Err(); err != nil {
		return err
	}
	if err := c.pipe.Seek(t); err != nil {
		return wrapIfNot(err, pipeline.ErrSeekSync)
	}
	c.log.Debug("seek", "target", t.String())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.eosPending = false
	if c.state == StateEnded {
		c.state = StatePlaying
		c.openReceiveLocked()
	}
	return nil
}

// Update applies e and returns the command that keeps the subscription
// alive, a SessionFailedMsg producer, or nil.
func (c *Controller) Update(e Event) tea.Cmd {
	c.op.Lock()
	defer c.op.Unlock()
	if c.isClosed() || c.Err() != nil {
		return nil
	}

	switch e.Kind {
	case EventPlayStatusChanged:
		return c.setStatus(e.Status)
	case EventTick, EventFrameReady:
		r := c.refresh()
		c.mu.Lock()
		defer c.mu.Unlock()
		c.applyLocked(r)
		if r.err != nil {
			return c.failLocked(StageRefresh, r.err)
		}
		return c.rearmLocked(e)
	}
	return nil
}

func (c *Controller) setStatus(s State) tea.Cmd {
	switch s {
	case StatePlaying:
		err := c.pipe.Play()
		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			return c.failLocked(StageStart, wrapIfNot(err, pipeline.ErrStateChange))
		}
		c.state = StatePlaying
		c.openReceiveLocked()
		if c.eosPending {
			c.eosPending = false
			c.endLocked()
			return nil
		}
		return c.subscribeLocked()
	case StateStopped:
		err := c.pipe.Pause()
		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			return c.failLocked(StagePause, wrapIfNot(err, pipeline.ErrStateChange))
		}
		c.state = StateStopped
		c.cancelReceiveLocked()
	default:
		c.log.Debug("ignoring status intent", "status", s.String())
	}
	return nil
}

// refreshResult holds the answers of one refresh, applied under mu.
type refreshResult struct {
	duration    time.Duration
	hasDuration bool
	position    time.Duration
	hasPosition bool
	volume      float64
	hasVolume   bool
	eos         bool
	err         error
}

// refresh queries the pipeline at most once per value and drains the bus.
// It runs without mu so accessors never wait on the pipeline.
func (c *Controller) refresh() refreshResult {
	c.mu.RLock()
	pending, known := c.durationPending, c.duration > 0
	c.mu.RUnlock()

	var r refreshResult
	if pending {
		d, err := c.pipe.QueryDuration()
		switch {
		case err == nil && d > 0:
			r.duration, r.hasDuration = d, true
			known = true
		case err != nil && !errors.Is(err, pipeline.ErrDuration):
			c.log.Debug("duration query failed", "err", err)
		}
	}

	if !c.src.IsCapture() {
		if known || c.src.Live {
			if p, err := c.pipe.QueryPosition(); err == nil {
				r.position, r.hasPosition = p, true
			}
		}
		if v, err := c.pipe.Volume(); err == nil {
			r.volume, r.hasVolume = v, true
		} else {
			c.log.Debug("volume read failed", "err", err)
		}
	}

	for {
		msg, ok := c.pipe.PopMessage()
		if !ok {
			return r
		}
		switch msg.Type {
		case pipeline.MessageError:
			r.err = busError(msg)
			return r
		case pipeline.MessageEOS:
			r.eos = true
			return r
		}
	}
}

func (c *Controller) applyLocked(r refreshResult) {
	if r.hasDuration {
		c.duration = r.duration
		c.durationPending = false
		c.log.Debug("duration resolved", "duration", r.duration)
	}
	if r.hasPosition {
		c.position = r.position
	}
	if r.hasVolume {
		c.volume = r.volume
	}
	if r.eos {
		switch c.state {
		case StatePlaying:
			c.endLocked()
		case StateStopped:
			c.eosPending = true
			c.log.Debug("end of stream while stopped")
		}
	}
}

func (c *Controller) endLocked() {
	c.state = StateEnded
	c.cancelReceiveLocked()
	c.log.Info("end of stream")
}

func (c *Controller) failLocked(stage Stage, err error) tea.Cmd {
	c.err = err
	c.cancelReceiveLocked()
	c.log.Error("session failed", "stage", stage.String(), "err", err)
	id := c.id
	return func() tea.Msg {
		return SessionFailedMsg{SessionID: id, Stage: stage, Err: err}
	}
}

func (c *Controller) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close tears the pipeline down. It blocks until the pipeline is stopped.
func (c *Controller) Close() error {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.cancelReceiveLocked()
	c.mu.Unlock()

	c.events.Close()
	err := c.pipe.Close()
	c.log.Info("session closed", "dropped_events", c.events.Dropped(),
		"overwritten_frames", c.slot.Overwritten())
	return err
}

func (c *Controller) openReceiveLocked() {
	if c.recvCancel != nil {
		c.recvCancel()
	}
	c.epoch++
	c.tickArmed = false
	c.recvArmed = false
	c.recvCtx, c.recvCancel = context.WithCancel(context.Background())
}

func (c *Controller) cancelReceiveLocked() {
	if c.recvCancel != nil {
		c.recvCancel()
		c.recvCancel = nil
	}
}

func busError(msg pipeline.Message) error {
	cause := msg.Err
	if cause == nil {
		cause = errors.New("unspecified error")
	}
	text := cause.Error()
	category := pipeline.Classify(text, msg.Debug)
	return fmt.Errorf("%w (%s): %w", pipeline.ErrBus, category, cause)
}

func wrapIfNot(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
