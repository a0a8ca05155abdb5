// Package nowplaying keeps the view model shown by player front ends:
// the active card, the now-playing bar, the progress line and the
// immersive view.
package nowplaying

import (
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/negativespace/internal/app/playback"
	"github.com/osa030/negativespace/internal/domain/track"
)

// ErrNoTrack is returned when the immersive view is opened before any track
// was chosen.
var ErrNoTrack = errors.New("no current track")

// Snapshot is a copy of the board state.
type Snapshot struct {
	ActiveID track.ID // Highlighted card, track.NoID if none
	Title    string
	Artist   string
	Cover    string
	Desc     string

	Playing    bool // Pause icon shown instead of play icon
	BarVisible bool // Now-playing bar revealed after the first switch
	Immersive  bool // Immersive view open
	Grayscale  bool // Cover rendered in grayscale (paused)

	Percent  float64 // Progress in [0,100]
	Elapsed  string  // mm:ss
	Total    string  // mm:ss
	Position time.Duration
	Duration time.Duration
}

// Board mirrors playback events into a render model.
type Board struct {
	mu    sync.RWMutex
	state Snapshot
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		state: Snapshot{
			Grayscale: true,
			Elapsed:   FormatTime(0),
			Total:     FormatTime(0),
		},
	}
}

// Apply updates the board from a playback event.
func (b *Board) Apply(ev playback.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch ev.Type {
	case playback.EventTrackChanged:
		if ev.Track == nil {
			return
		}
		b.state.ActiveID = ev.Track.ID
		b.state.Title = ev.Track.Title
		b.state.Artist = ev.Track.Artist
		b.state.Cover = ev.Track.CoverRef
		b.state.Desc = ev.Track.Desc
		b.state.BarVisible = true
		b.setProgressLocked(0, 0)

	case playback.EventPlayStateChanged:
		b.state.Playing = ev.Playing
		b.state.Grayscale = !ev.Playing

	case playback.EventProgress:
		if ev.Duration <= 0 {
			return
		}
		b.setProgressLocked(ev.Position, ev.Duration)
	}
}

func (b *Board) setProgressLocked(position, duration time.Duration) {
	b.state.Position = position
	b.state.Duration = duration
	b.state.Elapsed = FormatTime(position)
	b.state.Total = FormatTime(duration)

	if duration <= 0 {
		b.state.Percent = 0
		return
	}
	b.state.Percent = min(max(float64(position)/float64(duration)*100, 0), 100)
}

// OpenImmersive opens the immersive view of the current track.
func (b *Board) OpenImmersive() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.ActiveID == track.NoID {
		return ErrNoTrack
	}
	b.state.Immersive = true
	return nil
}

// CloseImmersive closes the immersive view.
func (b *Board) CloseImmersive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Immersive = false
}

// Snapshot returns a copy of the board state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// FormatTime renders d as zero-padded mm:ss. Minutes are not wrapped.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// SeekFraction converts a click on a progress line of the given width into
// a seek fraction in [0,1]. It reports false for a non-positive width.
func SeekFraction(clickX, width float64) (float64, bool) {
	if width <= 0 {
		return 0, false
	}
	return min(max(clickX/width, 0), 1), true
}
