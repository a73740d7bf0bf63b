//go:build !cgo

package gst

import (
	"fmt"
	"log/slog"

	"github.com/llehouerou/glimpse/internal/pipeline"
)

// Builder reports that GStreamer is unavailable in builds without cgo.
type Builder struct{}

func NewBuilder(*slog.Logger) *Builder { return &Builder{} }

func (*Builder) FromURL(string, pipeline.SampleFunc) (pipeline.Pipeline, error) {
	return nil, fmt.Errorf("%w: built without cgo", pipeline.ErrInitialization)
}

func (*Builder) FromCapture(uint32, pipeline.SampleFunc) (pipeline.Pipeline, error) {
	return nil, fmt.Errorf("%w: built without cgo", pipeline.ErrInitialization)
}
