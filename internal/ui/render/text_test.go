package render

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"very short max width", "hello", 3, "..."},
		{"empty string", "", 10, ""},
		{"control characters removed", "clip\x1b.mp4", 20, "clip.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateEllipsis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"truncation with single ellipsis", "hello world", 8, "hello w…"},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateEllipsis(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if len(got) != 20 {
		t.Errorf("Row() length = %d, want 20", len(got))
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row() = %q", got)
	}

	tight := Row("left", "right", 5)
	if tight != "left right" {
		t.Errorf("Row() tight = %q, want minimum gap of 1", tight)
	}
}

func TestSourceTitle(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"file:///home/me/Videos/holiday%20clip.mp4", "holiday clip.mp4"},
		{"https://example.com/streams/live.m3u8", "example.com/streams/live.m3u8"},
		{"rtsp://camera.local", "camera.local"},
		{"not a uri", "not a uri"},
	}
	for _, tt := range tests {
		if got := SourceTitle(tt.raw); got != tt.want {
			t.Errorf("SourceTitle(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
