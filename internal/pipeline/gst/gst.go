//go:build cgo

// Package gst builds GStreamer pipelines that deliver RGBA frames through an
// appsink.
package gst

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/llehouerou/glimpse/internal/pipeline"
)

var initOnce sync.Once

func initGStreamer() {
	initOnce.Do(func() { gst.Init(nil) })
}

// Builder creates go-gst pipelines.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a Builder logging to log (slog.Default when nil).
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{log: log.With("component", "gst")}
}

// FromURL builds a playbin decoding uri into an RGBA appsink.
func (b *Builder) FromURL(uri string, onSample pipeline.SampleFunc) (pipeline.Pipeline, error) {
	initGStreamer()

	// The launch parser sets video-sink with the right GType; a Go-side
	// SetProperty would pass a bare pointer and be rejected.
	pipe, err := gst.NewPipelineFromString(urlLaunchLine(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: playbin: %w", pipeline.ErrElementBuild, err)
	}
	elem, err := pipe.GetElementByNameRecursive(appSinkName)
	if err != nil || elem == nil {
		_ = pipe.SetState(gst.StateNull)
		return nil, fmt.Errorf("%w: %s not found in video sink", pipeline.ErrCast, appSinkName)
	}
	sink := app.SinkFromElement(elem)
	if sink == nil {
		_ = pipe.SetState(gst.StateNull)
		return nil, fmt.Errorf("%w: %s is not an appsink", pipeline.ErrCast, appSinkName)
	}
	b.attach(sink, onSample)

	b.log.Debug("url pipeline built", "uri", uri)
	return &gstPipeline{root: pipe.Element, bus: pipe.GetPipelineBus(), hasVolume: true, log: b.log}, nil
}

// FromCapture builds pipewiresrc for node into an RGBA appsink.
func (b *Builder) FromCapture(node uint32, onSample pipeline.SampleFunc) (pipeline.Pipeline, error) {
	initGStreamer()

	pipe, err := gst.NewPipeline("")
	if err != nil {
		return nil, fmt.Errorf("%w: pipeline: %w", pipeline.ErrElementBuild, err)
	}

	src, err := gst.NewElement("pipewiresrc")
	if err != nil {
		return nil, fmt.Errorf("%w: pipewiresrc: %w", pipeline.ErrElementBuild, err)
	}
	if err := src.SetProperty("path", strconv.FormatUint(uint64(node), 10)); err != nil {
		return nil, fmt.Errorf("%w: path: %w", pipeline.ErrElementBuild, err)
	}
	convert, err := gst.NewElement("videoconvert")
	if err != nil {
		return nil, fmt.Errorf("%w: videoconvert: %w", pipeline.ErrElementBuild, err)
	}
	scale, err := gst.NewElement("videoscale")
	if err != nil {
		return nil, fmt.Errorf("%w: videoscale: %w", pipeline.ErrElementBuild, err)
	}
	sink, err := app.NewAppSink()
	if err != nil {
		return nil, fmt.Errorf("%w: appsink: %w", pipeline.ErrElementBuild, err)
	}
	sink.SetCaps(gst.NewCapsFromString(rgbaCaps))
	b.attach(sink, onSample)

	if err := pipe.AddMany(src, convert, scale, sink.Element); err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrLink, err)
	}
	if err := gst.ElementLinkMany(src, convert, scale, sink.Element); err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrLink, err)
	}

	b.log.Debug("capture pipeline built", "node", node)
	return &gstPipeline{root: pipe.Element, bus: pipe.GetPipelineBus(), log: b.log}, nil
}

// attach installs the sample callback shared by every source kind.
// Bad samples are dropped and decoding continues.
func (b *Builder) attach(sink *app.Sink, onSample pipeline.SampleFunc) {
	sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: func(s *app.Sink) gst.FlowReturn {
			sample, err := pullSample(s)
			if err != nil {
				b.log.Debug("dropping sample", "err", err)
				return gst.FlowOK
			}
			if err := onSample(sample); err != nil {
				b.log.Debug("sample rejected", "err", err)
			}
			return gst.FlowOK
		},
	})
}

func pullSample(s *app.Sink) (pipeline.Sample, error) {
	sample := s.PullSample()
	if sample == nil {
		return pipeline.Sample{}, fmt.Errorf("%w: no sample", pipeline.ErrCaps)
	}
	caps := sample.GetCaps()
	if caps == nil || caps.GetSize() == 0 {
		return pipeline.Sample{}, fmt.Errorf("%w: sample without caps", pipeline.ErrCaps)
	}
	st := caps.GetStructureAt(0)
	width, err := intField(st, "width")
	if err != nil {
		return pipeline.Sample{}, err
	}
	height, err := intField(st, "height")
	if err != nil {
		return pipeline.Sample{}, err
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		return pipeline.Sample{}, fmt.Errorf("%w: sample without buffer", pipeline.ErrCaps)
	}
	data := buffer.Map(gst.MapRead).Bytes()
	pixels := make([]byte, len(data))
	copy(pixels, data)
	buffer.Unmap()

	return pipeline.Sample{Data: pixels, Width: width, Height: height}, nil
}

func intField(st *gst.Structure, name string) (int, error) {
	v, err := st.GetValue(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", pipeline.ErrCaps, name, err)
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T", pipeline.ErrCaps, name, v)
	}
	return n, nil
}

type gstPipeline struct {
	root      *gst.Element
	bus       *gst.Bus
	hasVolume bool
	log       *slog.Logger
}

func (p *gstPipeline) Play() error {
	if err := p.root.SetState(gst.StatePlaying); err != nil {
		return fmt.Errorf("%w: playing: %w", pipeline.ErrStateChange, err)
	}
	return nil
}

func (p *gstPipeline) Pause() error {
	if err := p.root.SetState(gst.StatePaused); err != nil {
		return fmt.Errorf("%w: paused: %w", pipeline.ErrStateChange, err)
	}
	return nil
}

func (p *gstPipeline) Close() error {
	if err := p.root.SetState(gst.StateNull); err != nil {
		return fmt.Errorf("%w: null: %w", pipeline.ErrStateChange, err)
	}
	return nil
}

func (p *gstPipeline) Seek(t pipeline.SeekTarget) error {
	format, pos := seekPosition(t)
	ev := gst.NewSeekEvent(1.0, format, gst.SeekFlagFlush,
		gst.SeekTypeSet, pos, gst.SeekTypeNone, -1)
	if !p.root.SendEvent(ev) {
		return fmt.Errorf("%w: seek to %s", pipeline.ErrSeekSync, t)
	}
	return nil
}

// seekPosition maps a target to the seek format and start value: frame
// indexes use the default (frame) format, times use nanoseconds.
func seekPosition(t pipeline.SeekTarget) (gst.Format, int64) {
	if t.Unit == pipeline.SeekFrame {
		return gst.FormatDefault, int64(t.Frame)
	}
	return gst.FormatTime, t.Time.Nanoseconds()
}

func (p *gstPipeline) Volume() (float64, error) {
	if !p.hasVolume {
		return 0, pipeline.ErrVolume
	}
	v, err := p.root.GetProperty("volume")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", pipeline.ErrVolume, err)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: volume is %T", pipeline.ErrVolume, v)
	}
	return f, nil
}

func (p *gstPipeline) SetVolume(v float64) error {
	if !p.hasVolume {
		return nil
	}
	return p.root.SetProperty("volume", v)
}

func (p *gstPipeline) QueryDuration() (time.Duration, error) {
	ok, ns := p.root.QueryDuration(gst.FormatTime)
	if !ok || ns < 0 {
		return 0, pipeline.ErrDuration
	}
	return time.Duration(ns), nil
}

func (p *gstPipeline) QueryPosition() (time.Duration, error) {
	ok, ns := p.root.QueryPosition(gst.FormatTime)
	if !ok || ns < 0 {
		return 0, pipeline.ErrPosition
	}
	return time.Duration(ns), nil
}

func (p *gstPipeline) PopMessage() (pipeline.Message, bool) {
	msg := p.bus.Pop()
	if msg == nil {
		return pipeline.Message{}, false
	}
	switch msg.Type() {
	case gst.MessageEOS:
		return pipeline.Message{Type: pipeline.MessageEOS}, true
	case gst.MessageError:
		gerr := msg.ParseError()
		if gerr == nil {
			return pipeline.Message{Type: pipeline.MessageError}, true
		}
		debug := gerr.DebugString()
		p.log.Error("pipeline error",
			"err", gerr.Error(),
			"debug", debug,
			"category", pipeline.Classify(gerr.Error(), debug).String())
		return pipeline.Message{Type: pipeline.MessageError, Err: gerr, Debug: debug}, true
	default:
		return pipeline.Message{Type: pipeline.MessageOther}, true
	}
}
