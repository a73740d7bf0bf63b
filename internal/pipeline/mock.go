// internal/pipeline/mock.go
package pipeline

import (
	"sync"
	"time"
)

// MockState is the coarse run state of a Mock.
type MockState int

const (
	MockNull MockState = iota
	MockPaused
	MockPlaying
)

// Mock is a scriptable Pipeline for tests. All methods are safe for
// concurrent use, so tests can emit samples from other goroutines.
type Mock struct {
	mu sync.Mutex

	state    MockState
	duration time.Duration
	position time.Duration
	volume   float64
	messages []Message
	onSample SampleFunc
	closed   bool

	playErr   error
	pauseErr  error
	seekErr   error
	volumeErr error

	// queryHook runs before each position query, outside the mock lock.
	queryHook func()

	playCalls       int
	pauseCalls      int
	seekCalls       []SeekTarget
	volumeCalls     []float64
	durationQueries int
	positionQueries int
}

// NewMock creates a stopped mock pipeline with full volume.
func NewMock() *Mock {
	return &Mock{volume: 1}
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	m.state = MockPlaying
	return nil
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.state = MockPaused
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = MockNull
	m.closed = true
	return nil
}

// Seek moves the reported position for time targets. Frame targets are
// recorded but leave the position alone.
func (m *Mock) Seek(target SeekTarget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, target)
	if m.seekErr != nil {
		return m.seekErr
	}
	if target.Unit == SeekTime {
		m.position = target.Time
	}
	return nil
}

func (m *Mock) Volume() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.volumeErr != nil {
		return 0, m.volumeErr
	}
	return m.volume, nil
}

func (m *Mock) SetVolume(v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeCalls = append(m.volumeCalls, v)
	m.volume = v
	return nil
}

// QueryDuration fails with ErrDuration until SetDuration is called with a
// non-zero value.
func (m *Mock) QueryDuration() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durationQueries++
	if m.duration == 0 {
		return 0, ErrDuration
	}
	return m.duration, nil
}

// QueryPosition fails with ErrPosition while the pipeline is not prerolled.
func (m *Mock) QueryPosition() (time.Duration, error) {
	m.mu.Lock()
	hook := m.queryHook
	m.mu.Unlock()
	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.positionQueries++
	if m.state == MockNull {
		return 0, ErrPosition
	}
	return m.position, nil
}

func (m *Mock) PopMessage() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return Message{}, false
	}
	msg := m.messages[0]
	m.messages = m.messages[1:]
	return msg, true
}

// Test helpers

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

// SetPosition simulates playback advancing.
func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// SetVolumeLevel changes the volume as if another client had set it.
func (m *Mock) SetVolumeLevel(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) SetPauseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseErr = err
}

func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekErr = err
}

// SetVolumeError makes volume reads fail with err until cleared with nil.
func (m *Mock) SetVolumeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeErr = err
}

// SetQueryHook installs fn to run at the start of every position query.
// Tests use it to stall the pipeline mid-refresh.
func (m *Mock) SetQueryHook(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryHook = fn
}

// PostMessage queues a bus message.
func (m *Mock) PostMessage(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// PostEOS queues an end-of-stream message.
func (m *Mock) PostEOS() { m.PostMessage(Message{Type: MessageEOS}) }

// PostError queues a fatal error message.
func (m *Mock) PostError(err error) {
	m.PostMessage(Message{Type: MessageError, Err: err})
}

// PendingMessages returns the number of undrained bus messages.
func (m *Mock) PendingMessages() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// EmitSample runs the sample callback as a streaming thread would.
// Returns the callback's error; nil if no callback is attached.
func (m *Mock) EmitSample(s Sample) error {
	m.mu.Lock()
	fn := m.onSample
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(s)
}

func (m *Mock) attach(fn SampleFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSample = fn
}

func (m *Mock) State() MockState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) SeekCalls() []SeekTarget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SeekTarget(nil), m.seekCalls...)
}

func (m *Mock) VolumeCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.volumeCalls...)
}

func (m *Mock) DurationQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.durationQueries
}

func (m *Mock) PositionQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positionQueries
}

// Verify Mock implements Pipeline at compile time.
var _ Pipeline = (*Mock)(nil)

// MockBuilder hands out a single Mock and records what was requested.
type MockBuilder struct {
	Pipeline *Mock
	Err      error

	URI  string
	Node uint32
	Kind string // "url" or "capture" after a build
}

// NewMockBuilder returns a builder serving a fresh Mock.
func NewMockBuilder() *MockBuilder {
	return &MockBuilder{Pipeline: NewMock()}
}

func (b *MockBuilder) FromURL(uri string, onSample SampleFunc) (Pipeline, error) {
	b.Kind = "url"
	b.URI = uri
	if b.Err != nil {
		return nil, b.Err
	}
	b.Pipeline.attach(onSample)
	return b.Pipeline, nil
}

func (b *MockBuilder) FromCapture(node uint32, onSample SampleFunc) (Pipeline, error) {
	b.Kind = "capture"
	b.Node = node
	if b.Err != nil {
		return nil, b.Err
	}
	b.Pipeline.attach(onSample)
	return b.Pipeline, nil
}

// Verify MockBuilder implements Builder at compile time.
var _ Builder = (*MockBuilder)(nil)
