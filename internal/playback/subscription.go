package playback

import (
	"context"
	"iter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Subscribe returns the commands feeding Tick and FrameReady events into the
// host while Playing, or nil otherwise. Calling it again within the same
// playing period only arms what is missing, so it is safe after a Seek.
func (c *Controller) Subscribe() tea.Cmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscribeLocked()
}

func (c *Controller) subscribeLocked() tea.Cmd {
	if c.state != StatePlaying || c.err != nil || c.closed {
		return nil
	}
	var cmds []tea.Cmd
	if !c.tickArmed {
		c.tickArmed = true
		cmds = append(cmds, c.tickCmd(c.epoch))
	}
	if !c.recvArmed {
		c.recvArmed = true
		cmds = append(cmds, c.receiveCmd(c.recvCtx, c.epoch))
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// rearmLocked renews the source that produced e, if it belongs to the
// current playing period.
func (c *Controller) rearmLocked(e Event) tea.Cmd {
	if e.epoch != c.epoch {
		return nil
	}
	switch e.origin {
	case originTicker:
		c.tickArmed = false
	case originChannel:
		c.recvArmed = false
	default:
		return nil
	}
	return c.subscribeLocked()
}

func (c *Controller) tickCmd(epoch uint64) tea.Cmd {
	return tea.Tick(c.tick, func(time.Time) tea.Msg {
		e := Tick()
		e.epoch, e.origin = epoch, originTicker
		return e
	})
}

func (c *Controller) receiveCmd(ctx context.Context, epoch uint64) tea.Cmd {
	events := c.events
	return func() tea.Msg {
		e, err := events.Receive(ctx)
		if err != nil {
			return nil
		}
		e.epoch, e.origin = epoch, originChannel
		return e
	}
}

// Events returns the event sequence for hosts that drive the controller
// from their own loop. It is empty unless Playing, and ends when the
// controller leaves Playing or ctx is done. Range it again to resume.
// Only one consumer may read events at a time, so do not combine it with
// Subscribe.
func (c *Controller) Events(ctx context.Context) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if !c.IsPlaying() {
			return
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		received := make(chan Event)
		go func() {
			for {
				e, err := c.events.Receive(ctx)
				if err != nil {
					return
				}
				select {
				case received <- e:
				case <-ctx.Done():
					return
				}
			}
		}()

		ticker := time.NewTicker(c.tick)
		defer ticker.Stop()

		for {
			var e Event
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e = Tick()
			case e = <-received:
			}
			if !yield(e) || !c.IsPlaying() {
				return
			}
		}
	}
}
