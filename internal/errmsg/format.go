// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/glimpse/internal/pipeline"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Source operations
	OpOpenSource Op = "open source"
	OpLoadConfig Op = "load configuration"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackSeek  Op = "seek"
	OpVolume        Op = "change volume"

	// Session
	OpSession Op = "keep playing"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Hint returns a short suggestion for well-known pipeline failures, or "".
func Hint(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrInitialization):
		return "GStreamer is not available in this build"
	case errors.Is(err, pipeline.ErrElementBuild), errors.Is(err, pipeline.ErrLink):
		return "a GStreamer plugin is missing (gst-plugins-base, pipewire)"
	case errors.Is(err, pipeline.ErrInvalidURI):
		return "use a full URI such as file:///path/to/video.mp4"
	case errors.Is(err, pipeline.ErrSeekSync):
		return "this source does not support seeking"
	default:
		return ""
	}
}
