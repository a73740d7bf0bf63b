package playback

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/llehouerou/glimpse/internal/pipeline"
)

// SourceKind tells how the pipeline is fed.
type SourceKind int

const (
	// SourceURL is a URI decoded by playbin. Seekable unless live.
	SourceURL SourceKind = iota
	// SourceCapture is a local capture node. Always running, never seekable.
	SourceCapture
)

func (k SourceKind) String() string {
	switch k {
	case SourceURL:
		return "url"
	case SourceCapture:
		return "capture"
	default:
		return "unknown"
	}
}

// Source describes what a controller plays.
type Source struct {
	Kind SourceKind
	URL  string
	// Live marks a network stream with no meaningful duration.
	// Seek and volume still reach the pipeline.
	Live bool
	// Node is the capture node id (a PipeWire object path).
	Node uint32
}

// FromURL describes a URI source.
func FromURL(rawURL string, live bool) Source {
	return Source{Kind: SourceURL, URL: rawURL, Live: live}
}

// FromCapture describes a capture node source.
func FromCapture(node uint32) Source {
	return Source{Kind: SourceCapture, Node: node}
}

// IsCapture reports whether the source is a capture node.
func (s Source) IsCapture() bool {
	return s.Kind == SourceCapture
}

func (s Source) String() string {
	if s.IsCapture() {
		return "capture:" + strconv.FormatUint(uint64(s.Node), 10)
	}
	if s.Live {
		return s.URL + " (live)"
	}
	return s.URL
}

func (s Source) validate() error {
	if s.IsCapture() {
		return nil
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", pipeline.ErrInvalidURI, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("%w: %q has no scheme", pipeline.ErrInvalidURI, s.URL)
	}
	return nil
}
