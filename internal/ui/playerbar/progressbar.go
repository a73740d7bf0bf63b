package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/glimpse/internal/ui/styles"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func RenderProgressBar(position, duration time.Duration, width int, status string) string {
	st := styles.T().S()
	posStr := formatDuration(position)
	durStr := durationLabel(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return joinNonEmpty("  ", st.Accent.Render(status), posStr+" / "+durStr)
	}

	var ratio float64
	if duration > 0 {
		ratio = min(float64(position)/float64(duration), 1)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := st.Accent.Render(strings.Repeat(filledBlock, filled)) +
		st.Subtle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return st.Accent.Render(status) + "  " + posStr + "  " + bar + "  " + durStr
}
