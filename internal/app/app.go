package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/glimpse/internal/keymap"
	"github.com/llehouerou/glimpse/internal/playback"
)

const (
	volumeStep = 0.05

	// nominalFrameRate estimates the current frame index from the position
	// when a frame step sequence starts.
	nominalFrameRate = 30
)

// Model is the root application model.
type Model struct {
	Controller *playback.Controller
	Title      string
	SeekStep   time.Duration

	// Stderr feeds captured native warnings into the model. May be nil.
	Stderr <-chan string

	keys *keymap.Resolver
	help help.Model

	ShowStats bool
	Failed    bool
	ErrorMsg  string
	Warning   string
	Width     int
	Height    int

	// stepFrame is the last frame index requested by a frame step. It is
	// valid only while stepping is set.
	stepFrame uint64
	stepping  bool

	view *frameCache
}

// frameCache holds the encoded frame so View does not re-encode an
// unchanged picture on every message.
type frameCache struct {
	written    uint64
	cols, rows int
	encoded    string
}

// New creates the model for a started controller.
func New(c *playback.Controller, title string, seekStep time.Duration) Model {
	if seekStep <= 0 {
		seekStep = 8 * time.Second
	}
	return Model{
		Controller: c,
		Title:      title,
		SeekStep:   seekStep,
		keys:       keymap.NewResolver(keymap.All),
		help:       help.New(),
		view:       &frameCache{},
	}
}

// Init implements tea.Model. A first refresh resolves duration and volume
// before the user presses play.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		refreshCmd(),
		m.Controller.Subscribe(),
		waitForStderr(m.Stderr),
	)
}
