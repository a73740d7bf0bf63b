// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionJump        Action = "jump"       // 0-9: jump to that tenth of the duration
	ActionFrameStep   Action = "frame_step" // one frame forward
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"

	// Display
	ActionToggleStats Action = "toggle_stats"
)
