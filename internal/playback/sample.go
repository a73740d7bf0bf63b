package playback

import (
	"fmt"
	"log/slog"

	"github.com/llehouerou/glimpse/internal/frame"
	"github.com/llehouerou/glimpse/internal/pipeline"
)

// newSampleHandler returns the producer callback shared by every source kind.
// It runs on pipeline streaming threads and touches only slot and events.
func newSampleHandler(slot *frame.Slot, events *EventChannel, log *slog.Logger) pipeline.SampleFunc {
	return func(s pipeline.Sample) error {
		if s.Width <= 0 || s.Height <= 0 {
			log.Debug("dropping sample", "width", s.Width, "height", s.Height)
			return fmt.Errorf("%w: %dx%d", pipeline.ErrCaps, s.Width, s.Height)
		}
		f, err := frame.New(s.Data, uint32(s.Width), uint32(s.Height))
		if err != nil {
			log.Debug("dropping sample", "err", err)
			return fmt.Errorf("%w: %w", pipeline.ErrCaps, err)
		}
		slot.Write(f)
		events.Send(FrameReady())
		return nil
	}
}
