// Package pipeline defines the contract of the decode/capture pipeline that
// produces frames. Implementations live in subpackages; Mock is a test double.
package pipeline

import (
	"fmt"
	"time"
)

// Sample is a decoded buffer handed over by a pipeline streaming thread.
// Data is owned by the receiver.
type Sample struct {
	Data   []byte
	Width  int
	Height int
}

// SampleFunc receives samples on a pipeline-internal thread.
// A returned error drops the sample; decoding continues.
type SampleFunc func(Sample) error

// Builder constructs pipelines for the two kinds of sources.
type Builder interface {
	// FromURL builds a pipeline reading uri. The pipeline is left stopped.
	FromURL(uri string, onSample SampleFunc) (Pipeline, error)
	// FromCapture builds a pipeline reading a live capture node. The
	// pipeline is left stopped.
	FromCapture(node uint32, onSample SampleFunc) (Pipeline, error)
}

// Pipeline is a running decode graph.
//
// Queries return ErrDuration or ErrPosition when the answer is not available
// yet; callers are expected to ask again later rather than wait.
type Pipeline interface {
	Play() error
	Pause() error
	// Close brings the pipeline to a full stop and releases it. It blocks
	// until the pipeline has shut down.
	Close() error

	// Seek issues a flushing seek.
	Seek(target SeekTarget) error

	// Volume returns ErrVolume when the level cannot be read.
	Volume() (float64, error)
	SetVolume(v float64) error

	QueryDuration() (time.Duration, error)
	QueryPosition() (time.Duration, error)

	// PopMessage returns the next queued bus message without blocking.
	PopMessage() (Message, bool)
}

// SeekUnit selects how a SeekTarget is interpreted.
type SeekUnit int

const (
	SeekTime SeekUnit = iota
	SeekFrame
)

// SeekTarget is a position to seek to, either a time offset or a frame index.
// Time offsets are not frame accurate on most containers.
type SeekTarget struct {
	Unit  SeekUnit
	Time  time.Duration
	Frame uint64
}

// AtTime returns a time based seek target.
func AtTime(d time.Duration) SeekTarget {
	return SeekTarget{Unit: SeekTime, Time: max(d, 0)}
}

// AtFrame returns a frame index seek target.
func AtFrame(n uint64) SeekTarget {
	return SeekTarget{Unit: SeekFrame, Frame: n}
}

func (t SeekTarget) String() string {
	if t.Unit == SeekFrame {
		return fmt.Sprintf("frame %d", t.Frame)
	}
	return t.Time.String()
}

// MessageType classifies bus messages. Only errors and end-of-stream matter
// to consumers; everything else is MessageOther.
type MessageType int

const (
	MessageOther MessageType = iota
	MessageError
	MessageEOS
)

func (t MessageType) String() string {
	switch t {
	case MessageOther:
		return "other"
	case MessageError:
		return "error"
	case MessageEOS:
		return "eos"
	default:
		return "unknown"
	}
}

// Message is an asynchronous notification from the pipeline bus.
type Message struct {
	Type  MessageType
	Err   error
	Debug string
}
