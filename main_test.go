package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/llehouerou/glimpse/internal/config"
	"github.com/llehouerou/glimpse/internal/playback"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	a := newApp()
	set := flag.NewFlagSet("glimpse", flag.ContinueOnError)
	for _, f := range a.Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(a, set, nil)
}

func TestSourceFrom(t *testing.T) {
	tests := []struct {
		name string
		args []string
		cfg  config.SourceConfig
		want playback.Source
	}{
		{"url argument", []string{"file:///clip.mp4"}, config.SourceConfig{}, playback.FromURL("file:///clip.mp4", false)},
		{"live flag", []string{"--live", "rtsp://cam/stream"}, config.SourceConfig{}, playback.FromURL("rtsp://cam/stream", true)},
		{"capture flag wins", []string{"--capture", "42", "file:///clip.mp4"}, config.SourceConfig{}, playback.FromCapture(42)},
		{"config url", nil, config.SourceConfig{URL: "https://x/a.webm", Live: true}, playback.FromURL("https://x/a.webm", true)},
		{"config capture", nil, config.SourceConfig{CaptureNode: 7}, playback.FromCapture(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sourceFrom(newContext(t, tt.args...), &config.Config{Source: tt.cfg})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceFrom_NothingToPlay(t *testing.T) {
	_, err := sourceFrom(newContext(t), &config.Config{})
	assert.ErrorIs(t, err, errNoSource)
}
