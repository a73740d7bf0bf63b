package playback

import (
	"io"
	"log/slog"
	"time"
)

// DefaultTickInterval is the refresh period while playing.
const DefaultTickInterval = 50 * time.Millisecond

// Option configures a Controller.
type Option func(*options)

type options struct {
	tick   time.Duration
	buffer int
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		tick:   DefaultTickInterval,
		buffer: DefaultEventBuffer,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithTickInterval sets the refresh period. Non-positive values are ignored.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.tick = d
		}
	}
}

// WithEventBuffer sets the EventChannel capacity. Non-positive values are ignored.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
