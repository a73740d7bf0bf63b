package mpris

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/glimpse/internal/playback"
)

// Player is the read side of the playback controller.
type Player interface {
	State() playback.State
	Position() time.Duration
	Duration() time.Duration
	Volume() float64
	Source() playback.Source
	SessionID() string
}

// Sender posts messages into the host loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// SeekMsg asks the host to seek. Offset is relative unless Absolute is set.
type SeekMsg struct {
	Offset   time.Duration
	Absolute bool
}

// VolumeMsg asks the host to set the volume.
type VolumeMsg struct {
	Volume float64
}

var (
	_ Player = (*playback.Controller)(nil)
	_ Sender = (*tea.Program)(nil)
)
