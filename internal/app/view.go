package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/glimpse/internal/keymap"
	"github.com/llehouerou/glimpse/internal/ui/kittyimg"
	"github.com/llehouerou/glimpse/internal/ui/playerbar"
	"github.com/llehouerou/glimpse/internal/ui/render"
	"github.com/llehouerou/glimpse/internal/ui/styles"
)

// Approximate terminal cell size in pixels, used to scale frames.
const (
	cellWidth  = 10
	cellHeight = 20
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	st := styles.T().S()

	footer := []string{playerbar.Render(playerbar.NewState(m.Controller, m.Title), m.Width)}
	if m.ShowStats {
		footer = append(footer, st.Subtle.Render(render.Truncate(m.stats(), m.Width)))
	}
	if m.ErrorMsg != "" {
		footer = append(footer, st.Error.Render(render.TruncateEllipsis(m.ErrorMsg, m.Width)))
	} else {
		footer = append(footer, m.help.View(keymap.NewHelp(keymap.All)))
	}
	bottom := lipgloss.JoinVertical(lipgloss.Left, footer...)

	rows := max(m.Height-lipgloss.Height(bottom), 1)
	return m.renderFrame(m.Width, rows) + "\n" + bottom
}

// renderFrame draws the latest frame into a cols x rows cell area, or a
// placeholder when there is nothing to show.
func (m Model) renderFrame(cols, rows int) string {
	if m.Failed {
		return kittyimg.Delete() + kittyimg.Placeholder(cols, rows, "session ended")
	}

	written := m.Controller.FramesWritten()
	if c := m.view; c != nil && c.encoded != "" &&
		c.written == written && c.cols == cols && c.rows == rows {
		return c.encoded + strings.Repeat("\n", rows-1)
	}

	f, ok := m.Controller.Frame()
	if !ok {
		label := "press space to play"
		if m.Controller.Source().IsCapture() {
			label = "waiting for capture"
		}
		return kittyimg.Placeholder(cols, rows, label)
	}

	encoded := kittyimg.Encode(f.Fit(uint(cols*cellWidth), uint(rows*cellHeight)), cols, rows)
	if m.view != nil {
		*m.view = frameCache{written: written, cols: cols, rows: rows, encoded: encoded}
	}
	// The image is drawn at the cursor; reserve its rows for the layout.
	return encoded + strings.Repeat("\n", rows-1)
}

func (m Model) stats() string {
	c := m.Controller
	parts := []string{c.Source().String()}
	if f, ok := c.Frame(); ok {
		parts = append(parts, fmt.Sprintf("%dx%d %s", f.Width, f.Height, humanize.IBytes(uint64(f.Len()))))
	}
	parts = append(parts,
		fmt.Sprintf("frames %s", humanize.Comma(int64(c.FramesWritten()))),
		fmt.Sprintf("overwritten %d", c.OverwrittenFrames()),
		fmt.Sprintf("dropped %d", c.DroppedEvents()),
		"session "+c.SessionID(),
	)
	if m.Warning != "" {
		parts = append(parts, "warning: "+render.Sanitize(m.Warning))
	}
	return strings.Join(parts, "  ")
}
