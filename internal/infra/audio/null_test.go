package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/negativespace/internal/app/playback"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestNull(t *testing.T) (*Null, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	n := newNull(NullSettings{TrackLengthSec: 10, ProgressIntervalMs: 250}, clock.Now)
	t.Cleanup(func() { _ = n.Close() })
	return n, clock
}

func drainEvents(n *Null) []playback.OutputEventType {
	var types []playback.OutputEventType
	for {
		select {
		case ev, ok := <-n.Events():
			if !ok {
				return types
			}
			types = append(types, ev.Type)
		default:
			return types
		}
	}
}

func TestNull_PlayWithoutSource(t *testing.T) {
	n, _ := newTestNull(t)

	assert.ErrorIs(t, n.Play(), ErrNoSource)
	assert.True(t, n.Paused())

	_, ok := n.Duration()
	assert.False(t, ok)
}

func TestNull_PlayPause(t *testing.T) {
	n, clock := newTestNull(t)
	require.NoError(t, n.SetSource("audio/1.mp3"))

	d, ok := n.Duration()
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, d)

	require.NoError(t, n.Play())
	assert.False(t, n.Paused())

	clock.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, n.Position())

	n.Pause()
	clock.Advance(5 * time.Second)
	assert.Equal(t, 3*time.Second, n.Position(), "position is frozen while paused")

	assert.Equal(t, []playback.OutputEventType{playback.OutputStarted, playback.OutputPaused}, drainEvents(n))
}

func TestNull_ProgressAndEnd(t *testing.T) {
	n, clock := newTestNull(t)
	require.NoError(t, n.SetSource("audio/1.mp3"))
	require.NoError(t, n.Play())
	drainEvents(n)

	clock.Advance(time.Second)
	n.tick()
	assert.Equal(t, []playback.OutputEventType{playback.OutputTimeUpdated}, drainEvents(n))

	clock.Advance(20 * time.Second)
	n.tick()
	assert.Equal(t, []playback.OutputEventType{
		playback.OutputTimeUpdated,
		playback.OutputPaused,
		playback.OutputEnded,
	}, drainEvents(n))
	assert.True(t, n.Paused())
	assert.Equal(t, 10*time.Second, n.Position())

	// Paused outputs do not report progress.
	n.tick()
	assert.Empty(t, drainEvents(n))

	// Playing after the end starts over.
	require.NoError(t, n.Play())
	assert.Equal(t, time.Duration(0), n.Position())
}

func TestNull_SetPosition(t *testing.T) {
	n, _ := newTestNull(t)

	n.SetPosition(time.Second)
	assert.Equal(t, time.Duration(0), n.Position(), "ignored without a source")

	require.NoError(t, n.SetSource("audio/1.mp3"))
	n.SetPosition(4 * time.Second)
	assert.Equal(t, 4*time.Second, n.Position())

	n.SetPosition(time.Hour)
	assert.Equal(t, 10*time.Second, n.Position())

	n.SetPosition(-time.Second)
	assert.Equal(t, time.Duration(0), n.Position())
}

func TestNull_SetSourceResets(t *testing.T) {
	n, clock := newTestNull(t)
	require.NoError(t, n.SetSource("audio/1.mp3"))
	require.NoError(t, n.Play())
	clock.Advance(2 * time.Second)
	drainEvents(n)

	require.NoError(t, n.SetSource("audio/2.mp3"))
	assert.Equal(t, "audio/2.mp3", n.Source())
	assert.True(t, n.Paused())
	assert.Equal(t, time.Duration(0), n.Position())
	assert.Equal(t, []playback.OutputEventType{playback.OutputPaused}, drainEvents(n))
}

func TestNull_Volume(t *testing.T) {
	n, _ := newTestNull(t)
	assert.Equal(t, 1.0, n.Volume())

	n.SetVolume(0.25)
	assert.Equal(t, 0.25, n.Volume())
	n.SetVolume(2)
	assert.Equal(t, 1.0, n.Volume())
	n.SetVolume(-1)
	assert.Equal(t, 0.0, n.Volume())
}

func TestNull_Close(t *testing.T) {
	n := NewNull(NullSettings{TrackLengthSec: 1, ProgressIntervalMs: 10})
	require.NoError(t, n.Close())
	require.NoError(t, n.Close())

	_, ok := <-n.Events()
	assert.False(t, ok)
}
