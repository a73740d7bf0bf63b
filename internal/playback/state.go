// internal/playback/state.go
package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// IsPlaying returns true while frames are expected to flow.
func (s State) IsPlaying() bool {
	return s == StatePlaying
}

// ShowsPlay reports whether a play control should be offered,
// which is the case when stopped or at end of stream.
func (s State) ShowsPlay() bool {
	return s == StateStopped || s == StateEnded
}
