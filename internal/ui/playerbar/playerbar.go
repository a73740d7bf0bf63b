package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/glimpse/internal/icons"
	"github.com/llehouerou/glimpse/internal/playback"
	"github.com/llehouerou/glimpse/internal/ui/render"
	"github.com/llehouerou/glimpse/internal/ui/styles"
)

// Height is the rendered height: top border, content, bottom border.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Status   playback.State
	Title    string
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Live     bool
	Capture  bool
}

// NewState snapshots the controller.
func NewState(c *playback.Controller, title string) State {
	src := c.Source()
	return State{
		Status:   c.State(),
		Title:    title,
		Position: c.Position(),
		Duration: c.Duration(),
		Volume:   c.Volume(),
		Live:     src.Live,
		Capture:  src.IsCapture(),
	}
}

// StatusIcon returns the control offered in the current state: play while
// stopped or ended, pause while playing.
func StatusIcon(s playback.State) string {
	if s.ShowsPlay() {
		return icons.Play()
	}
	return icons.Pause()
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	st := styles.T().S()
	innerWidth := max(width-6, 0)

	status := StatusIcon(s.Status)
	if s.Status == playback.StateEnded {
		status += " " + icons.Ended()
	}

	var right string
	switch {
	case s.Capture:
		right = st.Badge.Render(icons.Capture())
	case s.Live:
		right = st.Badge.Render(icons.Live()) + "   " + RenderVolume(s.Volume)
	default:
		right = RenderVolume(s.Volume)
	}

	title := render.Truncate(icons.FormatTitle(s.Title), max(innerWidth/3, 10))
	fixed := lipgloss.Width(title) + lipgloss.Width(right) + 6
	barWidth := max(innerWidth-fixed, 0)

	var middle string
	if s.Capture || s.Live {
		middle = st.Accent.Render(status) + "  " + st.Muted.Render(formatDuration(s.Position))
	} else {
		middle = RenderProgressBar(s.Position, s.Duration, barWidth, status)
	}

	content := render.Row(st.Title.Render(title)+"   "+middle, right, innerWidth)
	return st.Panel.Padding(0, 2).Width(max(width-2, 0)).Render(content)
}

// RenderVolume renders the volume indicator, e.g. "vol  80%".
func RenderVolume(volume float64) string {
	pct := int(volume*100 + 0.5)
	return styles.T().S().Muted.Render(fmt.Sprintf("%s %3d%%", icons.Volume(volume), pct))
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// unknownDuration is shown until the duration resolves.
const unknownDuration = "--:--"

func durationLabel(d time.Duration) string {
	if d <= 0 {
		return unknownDuration
	}
	return formatDuration(d)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
