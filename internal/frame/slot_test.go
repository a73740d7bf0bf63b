package frame

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_ReadBeforeWrite(t *testing.T) {
	var s Slot

	f, ok := s.Read()

	assert.False(t, ok)
	assert.True(t, f.Empty())
}

func TestSlot_LastWriteWins(t *testing.T) {
	var s Slot
	for i := range 10 {
		s.Write(solid(uint32(i+1), 1, byte(i)))
	}

	f, ok := s.Read()

	require.True(t, ok)
	assert.Equal(t, uint32(10), f.Width)
	assert.Equal(t, uint32(1), f.Height)
	assert.Equal(t, solid(10, 1, 9).Pixels, f.Pixels)
	assert.Equal(t, uint64(10), s.Writes())
	assert.Equal(t, uint64(9), s.Overwritten())
}

func TestSlot_ReadReturnsCopy(t *testing.T) {
	var s Slot
	s.Write(solid(1, 1, 5))

	f, _ := s.Read()
	f.Pixels[0] = 0

	again, _ := s.Read()
	assert.Equal(t, byte(5), again.Pixels[0])
}

func TestSlot_ReadIsRepeatable(t *testing.T) {
	var s Slot
	s.Write(solid(2, 2, 1))

	first, ok1 := s.Read()
	second, ok2 := s.Read()

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(0), s.Overwritten())
}

// Readers must only ever see whole frames: every pixel of a frame carries the
// same value and its width matches that value.
func TestSlot_ConcurrentNoTornReads(t *testing.T) {
	var s Slot
	var wg sync.WaitGroup

	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				v := byte((w*50 + i) % 250)
				s.Write(solid(uint32(v)+1, 2, v))
			}
		}()
	}

	errs := make(chan string, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 500 {
			f, ok := s.Read()
			if !ok {
				continue
			}
			want := byte(f.Width - 1)
			for _, p := range f.Pixels {
				if p != want {
					select {
					case errs <- "torn frame observed":
					default:
					}
					return
				}
			}
		}
	}()

	wg.Wait()
	select {
	case msg := <-errs:
		t.Fatal(msg)
	default:
	}
}
