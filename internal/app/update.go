package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/glimpse/internal/errmsg"
	"github.com/llehouerou/glimpse/internal/keymap"
	"github.com/llehouerou/glimpse/internal/mpris"
	"github.com/llehouerou/glimpse/internal/pipeline"
	"github.com/llehouerou/glimpse/internal/playback"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case playback.Event:
		return m, m.Controller.Update(msg)

	case playback.SessionFailedMsg:
		m.Failed = true
		m.ErrorMsg = formatError(failedOp(msg.Stage), msg.Err)
		return m, nil

	case mpris.SeekMsg:
		target := msg.Offset
		if !msg.Absolute {
			target += m.Controller.Position()
		}
		return m, m.seek(pipeline.AtTime(target))

	case mpris.VolumeMsg:
		return m, m.setVolume(msg.Volume)

	case StderrMsg:
		m.Warning = msg.Line
		return m, waitForStderr(m.Stderr)

	case stderrClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	action := m.keys.Resolve(key)

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case keymap.ActionToggleStats:
		m.ShowStats = !m.ShowStats
		return m, nil
	}

	// The session is over; only display keys still apply.
	if m.Failed {
		return m, nil
	}

	c := m.Controller
	switch action {
	case keymap.ActionPlayPause:
		m.ErrorMsg = ""
		return m, m.togglePlay()

	case keymap.ActionSeekForward:
		m.stepping = false
		return m, m.seek(pipeline.AtTime(c.Position() + m.SeekStep))

	case keymap.ActionSeekBack:
		m.stepping = false
		return m, m.seek(pipeline.AtTime(c.Position() - m.SeekStep))

	case keymap.ActionJump:
		n, ok := keymap.JumpTenth(key)
		if !ok || c.Duration() <= 0 {
			return m, nil
		}
		m.stepping = false
		return m, m.seek(pipeline.AtTime(c.Duration() * time.Duration(n) / 10))

	case keymap.ActionFrameStep:
		if !m.stepping {
			m.stepFrame = uint64(c.PositionSeconds() * nominalFrameRate)
			m.stepping = true
		}
		m.stepFrame++
		return m, m.seek(pipeline.AtFrame(m.stepFrame))

	case keymap.ActionVolumeUp:
		return m, m.setVolume(c.Volume() + volumeStep)

	case keymap.ActionVolumeDown:
		return m, m.setVolume(c.Volume() - volumeStep)
	}
	return m, nil
}

// togglePlay asks the controller for the opposite of the shown control.
// Ended restarts from the beginning.
func (m *Model) togglePlay() tea.Cmd {
	c := m.Controller
	switch c.State() {
	case playback.StatePlaying:
		return c.Update(playback.PlayStatusChanged(playback.StateStopped))
	case playback.StateEnded:
		m.stepping = false
		return m.seek(pipeline.AtTime(0))
	default:
		return c.Update(playback.PlayStatusChanged(playback.StatePlaying))
	}
}

// seek forwards t to the controller, then refreshes at once and makes sure
// the subscription runs if the seek resumed playback.
func (m *Model) seek(t pipeline.SeekTarget) tea.Cmd {
	if err := m.Controller.Seek(t); err != nil {
		m.ErrorMsg = formatError(errmsg.OpPlaybackSeek, err)
		return nil
	}
	m.ErrorMsg = ""
	return tea.Batch(refreshCmd(), m.Controller.Subscribe())
}

func (m *Model) setVolume(v float64) tea.Cmd {
	if err := m.Controller.SetVolume(v); err != nil {
		m.ErrorMsg = formatError(errmsg.OpVolume, err)
	}
	return nil
}

// failedOp names the operation a session failure interrupted.
func failedOp(stage playback.Stage) errmsg.Op {
	switch stage {
	case playback.StageStart:
		return errmsg.OpPlaybackStart
	case playback.StagePause:
		return errmsg.OpPlaybackPause
	default:
		return errmsg.OpSession
	}
}

func formatError(op errmsg.Op, err error) string {
	if err == nil {
		err = errors.New("unknown error")
	}
	text := errmsg.Format(op, err)
	if hint := errmsg.Hint(err); hint != "" {
		text += " (" + hint + ")"
	}
	return text
}
