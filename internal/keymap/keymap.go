// Package keymap defines key bindings for the application.
package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "display"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "quit", "global"},
	{ActionHelp, []string{"?"}, "help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "play/pause", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "seek back", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "seek forward", "playback"},
	{ActionJump, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "jump to n/10", "playback"},
	{ActionFrameStep, []string{"."}, "next frame", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "volume down", "playback"},

	// Display
	{ActionToggleStats, []string{"i"}, "stream info", "display"},
}

// helpKey is the label shown for a binding in the help line.
func (b Binding) helpKey() string {
	switch b.Action {
	case ActionPlayPause:
		return "space"
	case ActionJump:
		return "0-9"
	case ActionSeekBack:
		return "←"
	case ActionSeekForward:
		return "→"
	}
	if len(b.Keys) == 0 {
		return ""
	}
	return b.Keys[0]
}

// Key converts the binding into a bubbles key binding.
func (b Binding) Key() key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(b.helpKey(), b.Description),
	)
}

// Help adapts bindings to the bubbles help.KeyMap interface.
type Help struct {
	short []key.Binding
	full  [][]key.Binding
}

// NewHelp builds the help map. The short form lists the playback and quit
// bindings; the full form groups every binding by context.
func NewHelp(bindings []Binding) Help {
	var h Help
	groups := map[string][]key.Binding{}
	var order []string
	for _, b := range bindings {
		k := b.Key()
		if _, ok := groups[b.Context]; !ok {
			order = append(order, b.Context)
		}
		groups[b.Context] = append(groups[b.Context], k)
		if b.Context == "playback" || b.Action == ActionQuit || b.Action == ActionHelp {
			h.short = append(h.short, k)
		}
	}
	for _, c := range order {
		h.full = append(h.full, groups[c])
	}
	return h
}

func (h Help) ShortHelp() []key.Binding  { return h.short }
func (h Help) FullHelp() [][]key.Binding { return h.full }
