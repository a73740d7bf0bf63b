package keymap

import "testing"

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(All)

	tests := []struct {
		key  string
		want Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"left", ActionSeekBack},
		{"right", ActionSeekForward},
		{"7", ActionJump},
		{".", ActionFrameStep},
		{"+", ActionVolumeUp},
		{"-", ActionVolumeDown},
		{"i", ActionToggleStats},
		{"x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := r.Resolve(tt.key); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestResolver_LastBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionSeekBack, []string{"h"}, "seek back", "playback"},
		{ActionHelp, []string{"h"}, "help", "global"},
	})

	if got := r.Resolve("h"); got != ActionHelp {
		t.Errorf("Resolve(h) = %q, want %q", got, ActionHelp)
	}
}

func TestJumpTenth(t *testing.T) {
	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"0", 0, true},
		{"5", 5, true},
		{"9", 9, true},
		{"10", 0, false},
		{"a", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := JumpTenth(tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("JumpTenth(%q) = %d, %v, want %d, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}
