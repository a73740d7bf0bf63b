package playback

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/glimpse/internal/pipeline"
)

func startBatch(t *testing.T, cmd tea.Cmd) (tick, receive tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected a batch of tick and receive")
	require.Len(t, batch, 2)
	return batch[0], batch[1]
}

func TestSubscribe_NilWhenNotPlaying(t *testing.T) {
	c, m := newURLController(t, false)
	assert.Nil(t, c.Subscribe())

	c.Update(PlayStatusChanged(StatePlaying))
	m.PostEOS()
	c.Update(Tick())
	assert.Nil(t, c.Subscribe())
}

func TestSubscribe_TickChainRearms(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newURLController(t, false)
		tick, _ := startBatch(t, c.Update(PlayStatusChanged(StatePlaying)))

		start := time.Now()
		e, ok := tick().(Event)
		require.True(t, ok)
		assert.Equal(t, EventTick, e.Kind)
		assert.Equal(t, DefaultTickInterval, time.Since(start))

		next := c.Update(e)
		require.NotNil(t, next)
		e, ok = next().(Event)
		require.True(t, ok)
		assert.Equal(t, EventTick, e.Kind)
	})
}

func TestSubscribe_ReceiveChainRearms(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, m := newURLController(t, false)
		_, receive := startBatch(t, c.Update(PlayStatusChanged(StatePlaying)))

		require.NoError(t, m.EmitSample(sample(2, 2)))
		e, ok := receive().(Event)
		require.True(t, ok)
		assert.Equal(t, EventFrameReady, e.Kind)

		assert.NotNil(t, c.Update(e))
	})
}

func TestSubscribe_OnlyArmsMissingSources(t *testing.T) {
	c, _ := newURLController(t, false)
	c.Update(PlayStatusChanged(StatePlaying))

	assert.Nil(t, c.Subscribe())
	assert.Nil(t, c.Update(Tick()), "host ticks do not start a second chain")
}

func TestSubscribe_StoppedCancelsReceive(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newURLController(t, false)
		tick, receive := startBatch(t, c.Update(PlayStatusChanged(StatePlaying)))

		done := make(chan tea.Msg, 1)
		go func() { done <- receive() }()
		synctest.Wait()

		c.Update(PlayStatusChanged(StateStopped))
		assert.Nil(t, <-done)

		// A tick from the stopped period is processed but not renewed.
		e, ok := tick().(Event)
		require.True(t, ok)
		assert.Nil(t, c.Update(e))
	})
}

func TestSubscribe_StaleEpochIsNotRearmed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newURLController(t, false)
		oldTick, _ := startBatch(t, c.Update(PlayStatusChanged(StatePlaying)))

		c.Update(PlayStatusChanged(StateStopped))
		startBatch(t, c.Update(PlayStatusChanged(StatePlaying)))

		e, ok := oldTick().(Event)
		require.True(t, ok)
		assert.Nil(t, c.Update(e))
		assert.Nil(t, c.Subscribe(), "current chains are still armed")
	})
}

func TestSubscribe_SeekFromEndedRestarts(t *testing.T) {
	c, m := newURLController(t, false)
	c.Update(PlayStatusChanged(StatePlaying))
	m.PostEOS()
	c.Update(Tick())
	require.Nil(t, c.Subscribe())

	require.NoError(t, c.Seek(pipeline.AtTime(time.Second)))

	assert.NotNil(t, c.Subscribe())
}

func TestEvents_EmptyWhenNotPlaying(t *testing.T) {
	c, _ := newURLController(t, false)

	count := 0
	for range c.Events(context.Background()) {
		count++
	}

	assert.Zero(t, count)
}

func TestEvents_YieldsTicksAndFrames(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, m := newCaptureController(t)
		require.NoError(t, m.EmitSample(sample(2, 2)))

		start := time.Now()
		var sawTick, sawFrame bool
		for e := range c.Events(context.Background()) {
			switch e.Kind {
			case EventTick:
				sawTick = true
				assert.LessOrEqual(t, time.Since(start), DefaultTickInterval)
			case EventFrameReady:
				sawFrame = true
			}
			c.Update(e)
			if sawTick && sawFrame {
				break
			}
		}

		assert.True(t, sawTick)
		assert.True(t, sawFrame)
	})
}

func TestEvents_EndsWhenStopped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newCaptureController(t)

		count := 0
		for range c.Events(context.Background()) {
			count++
			c.Update(PlayStatusChanged(StateStopped))
		}

		assert.Equal(t, 1, count)

		for range c.Events(context.Background()) {
			t.Fatal("no events expected while stopped")
		}
	})
}

func TestEvents_EndsWithContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newCaptureController(t)
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
		defer cancel()

		count := 0
		for range c.Events(ctx) {
			count++
		}

		assert.Equal(t, 2, count)
	})
}
