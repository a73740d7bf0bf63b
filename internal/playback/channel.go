package playback

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// DefaultEventBuffer is the EventChannel capacity used by New.
const DefaultEventBuffer = 64

// ErrChannelClosed is returned by Receive once the channel is closed.
var ErrChannelClosed = errors.New("event channel closed")

// EventChannel carries events from producer threads to one subscriber.
//
// Send never blocks: when the buffer is full the event is dropped, since the
// periodic tick refreshes state anyway. Receive admits a single caller at a
// time; a second subscriber waits for the first to return.
type EventChannel struct {
	ch      chan Event
	recv    chan struct{}
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

// NewEventChannel creates a channel buffering up to size events.
func NewEventChannel(size int) *EventChannel {
	if size <= 0 {
		size = DefaultEventBuffer
	}
	return &EventChannel{
		ch:   make(chan Event, size),
		recv: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Send enqueues e (non-blocking). Safe from any goroutine.
func (c *EventChannel) Send(e Event) {
	select {
	case <-c.done:
		c.dropped.Add(1)
		return
	default:
	}
	select {
	case c.ch <- e:
	default:
		c.dropped.Add(1)
	}
}

// Receive waits for the next event, Close, or ctx cancellation.
func (c *EventChannel) Receive(ctx context.Context) (Event, error) {
	select {
	case c.recv <- struct{}{}:
	case <-c.done:
		return Event{}, ErrChannelClosed
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
	defer func() { <-c.recv }()

	select {
	case e := <-c.ch:
		return e, nil
	case <-c.done:
		return Event{}, ErrChannelClosed
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Close wakes pending receivers. Later sends are dropped. Idempotent.
func (c *EventChannel) Close() {
	c.once.Do(func() { close(c.done) })
}

// Dropped returns how many events were discarded.
func (c *EventChannel) Dropped() uint64 {
	return c.dropped.Load()
}

// Len returns the number of buffered events.
func (c *EventChannel) Len() int {
	return len(c.ch)
}
