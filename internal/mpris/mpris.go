//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/glimpse/internal/playback"
)

// Adapter exposes a playback controller over MPRIS. Reads go straight to
// the controller; every intent is posted into the host loop.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(player Player, sender Sender, title string) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("glimpse", &rootAdapter{},
			&playerAdapter{player: player, sender: sender, title: title}),
	}

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Glimpse", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https", "rtsp"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4", "video/webm", "video/x-matroska"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	player Player
	sender Sender
	title  string
}

func (p *playerAdapter) Next() error {
	return nil // Single source
}

func (p *playerAdapter) Previous() error {
	return nil // Single source
}

func (p *playerAdapter) Pause() error {
	p.sender.Send(playback.PlayStatusChanged(playback.StateStopped))
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.player.State().IsPlaying() {
		return p.Pause()
	}
	return p.Play()
}

func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	p.sender.Send(playback.PlayStatusChanged(playback.StatePlaying))
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.sender.Send(SeekMsg{Offset: time.Duration(offset) * time.Microsecond})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.sender.Send(SeekMsg{Offset: time.Duration(position) * time.Microsecond, Absolute: true})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.player.State()), nil
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StateStopped:
		// Stopped is a resumable pause for the controller.
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(p.player.SessionID())),
		Length:  types.Microseconds(p.player.Duration().Microseconds()),
		Title:   p.title,
	}

	if art := FindPoster(p.player.Source().URL); art != "" {
		meta.ArtUrl = "file://" + art
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.player.Volume(), nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	if p.player.Source().IsCapture() {
		return nil
	}
	p.sender.Send(VolumeMsg{Volume: v})
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.player.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return !p.player.Source().IsCapture() && p.player.Duration() > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(session string) string {
	h := fnv.New64a()
	h.Write([]byte(session))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
