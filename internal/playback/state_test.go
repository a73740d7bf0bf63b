// internal/playback/state_test.go
package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StateEnded, "Ended"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_Controls(t *testing.T) {
	tests := []struct {
		state     State
		playing   bool
		showsPlay bool
	}{
		{StateStopped, false, true},
		{StatePlaying, true, false},
		{StateEnded, false, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsPlaying(); got != tt.playing {
			t.Errorf("%v.IsPlaying() = %v, want %v", tt.state, got, tt.playing)
		}
		if got := tt.state.ShowsPlay(); got != tt.showsPlay {
			t.Errorf("%v.ShowsPlay() = %v, want %v", tt.state, got, tt.showsPlay)
		}
	}
}

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageRefresh, "refresh"},
		{StageStart, "start"},
		{StagePause, "pause"},
		{Stage(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
