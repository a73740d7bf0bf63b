package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/glimpse/internal/playback"
)

// refreshCmd emits a one-off Tick so the controller refreshes right away.
// The controller never re-arms host ticks.
func refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return playback.Tick()
	}
}

// waitForStderr returns a command that waits for the next captured stderr line.
func waitForStderr(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return stderrClosedMsg{}
		}
		return StderrMsg{Line: line}
	}
}
