package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play    string
	Pause   string
	Ended   string
	Volume  string
	Muted   string
	Live    string
	Capture string
	Video   string
}

var (
	nerdIcons = Icons{
		Play:    "\uf04b", // nf-fa-play
		Pause:   "\uf04c", // nf-fa-pause
		Ended:   "\uf04d", // nf-fa-stop
		Volume:  "󰕾",      // nf-md-volume_high
		Muted:   "󰝟",      // nf-md-volume_mute
		Live:    "󰐹",      // nf-md-record_circle
		Capture: "󰍹",      // nf-md-monitor
		Video:   "󰕧 ",     // nf-md-video
	}

	unicodeIcons = Icons{
		Play:    "▶",
		Pause:   "⏸",
		Ended:   "⏹",
		Volume:  "🔊",
		Muted:   "🔇",
		Live:    "●",
		Capture: "🖥",
		Video:   "🎞 ",
	}

	noneIcons = Icons{
		Play:    ">",
		Pause:   "||",
		Ended:   "[]",
		Volume:  "vol",
		Muted:   "mute",
		Live:    "LIVE",
		Capture: "CAP",
		Video:   "",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Play returns the icon offered while stopped or ended.
func Play() string {
	return current.Play
}

// Pause returns the icon offered while playing.
func Pause() string {
	return current.Pause
}

// Ended returns the end-of-stream marker.
func Ended() string {
	return current.Ended
}

// Volume returns the volume icon, or the muted icon at zero.
func Volume(level float64) string {
	if level <= 0 {
		return current.Muted
	}
	return current.Volume
}

// Live returns the live stream badge.
func Live() string {
	return current.Live
}

// Capture returns the capture source badge.
func Capture() string {
	return current.Capture
}

// FormatTitle formats a source title with the video icon.
func FormatTitle(name string) string {
	return current.Video + name
}
