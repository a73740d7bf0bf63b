package playback

// EventKind identifies a control event.
type EventKind int

const (
	// EventTick is the periodic refresh.
	EventTick EventKind = iota
	// EventFrameReady is sent by the producer after a frame was stored.
	EventFrameReady
	// EventPlayStatusChanged carries a user's play or pause intent.
	EventPlayStatusChanged
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "Tick"
	case EventFrameReady:
		return "FrameReady"
	case EventPlayStatusChanged:
		return "PlayStatusChanged"
	default:
		return "Unknown"
	}
}

// origin records which subscription source produced an event.
type origin int

const (
	originHost origin = iota
	originTicker
	originChannel
)

// Event is fed back into Controller.Update. It is a valid tea.Msg.
type Event struct {
	Kind   EventKind
	Status State // set for EventPlayStatusChanged

	epoch  uint64
	origin origin
}

// Tick returns a refresh event.
func Tick() Event { return Event{Kind: EventTick} }

// FrameReady returns a new-frame notification.
func FrameReady() Event { return Event{Kind: EventFrameReady} }

// PlayStatusChanged returns a play (StatePlaying) or pause (StateStopped) intent.
func PlayStatusChanged(s State) Event {
	return Event{Kind: EventPlayStatusChanged, Status: s}
}

// Stage names what the controller was doing when a session failed.
type Stage int

const (
	StageRefresh Stage = iota // polling queries and the bus
	StageStart                // entering Playing
	StagePause                // entering Stopped
)

func (s Stage) String() string {
	switch s {
	case StageRefresh:
		return "refresh"
	case StageStart:
		return "start"
	case StagePause:
		return "pause"
	default:
		return "unknown"
	}
}

// SessionFailedMsg is produced when the pipeline reports a fatal error.
// The controller stays usable for its accessors but ignores further updates.
type SessionFailedMsg struct {
	SessionID string
	Stage     Stage
	Err       error
}
