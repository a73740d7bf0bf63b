package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtTime_ClampsNegative(t *testing.T) {
	assert.Equal(t, time.Duration(0), AtTime(-time.Second).Time)
	assert.Equal(t, SeekTime, AtTime(time.Second).Unit)
}

func TestSeekTarget_String(t *testing.T) {
	assert.Equal(t, "8s", AtTime(8*time.Second).String())
	assert.Equal(t, "frame 42", AtFrame(42).String())
}

func TestMock_DurationUnavailableUntilSet(t *testing.T) {
	m := NewMock()

	_, err := m.QueryDuration()
	assert.True(t, errors.Is(err, ErrDuration))

	m.SetDuration(10 * time.Second)
	d, err := m.QueryDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
	assert.Equal(t, 2, m.DurationQueries())
}

func TestMock_VolumeError(t *testing.T) {
	m := NewMock()
	m.SetVolumeError(ErrVolume)

	_, err := m.Volume()
	assert.ErrorIs(t, err, ErrVolume)

	m.SetVolumeError(nil)
	v, err := m.Volume()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestMock_MessagesDrainInOrder(t *testing.T) {
	m := NewMock()
	m.PostError(errors.New("boom"))
	m.PostEOS()

	first, ok := m.PopMessage()
	require.True(t, ok)
	assert.Equal(t, MessageError, first.Type)

	second, ok := m.PopMessage()
	require.True(t, ok)
	assert.Equal(t, MessageEOS, second.Type)

	_, ok = m.PopMessage()
	assert.False(t, ok)
}

func TestMockBuilder_AttachesSampleFunc(t *testing.T) {
	b := NewMockBuilder()
	var got Sample
	p, err := b.FromURL("file:///tmp/a.mp4", func(s Sample) error {
		got = s
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "url", b.Kind)

	mock, ok := p.(*Mock)
	require.True(t, ok)
	require.NoError(t, mock.EmitSample(Sample{Width: 2, Height: 1, Data: make([]byte, 8)}))
	assert.Equal(t, 2, got.Width)
}

func TestMockBuilder_Error(t *testing.T) {
	b := NewMockBuilder()
	b.Err = ErrElementBuild

	_, err := b.FromCapture(42, nil)

	assert.ErrorIs(t, err, ErrElementBuild)
	assert.Equal(t, uint32(42), b.Node)
}
