// Package app contains the bubbletea model hosting one playback session.
package app

// StderrMsg carries a line written to stderr by GStreamer or a plugin.
type StderrMsg struct {
	Line string
}

// stderrClosedMsg is sent when the stderr capture channel is closed.
type stderrClosedMsg struct{}
