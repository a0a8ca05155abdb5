package playback

import (
	"context"
	"time"
)

// Output is the audio output handle driven by the controller.
//
// Implementations must deliver events asynchronously on the Events channel
// and never call back into the controller from within a method call.
// After a source plays to the end the output reports Paused() == true.
type Output interface {
	// Play starts or resumes playback. It may fail, e.g. when no source is set.
	Play() error
	// Pause pauses playback.
	Pause()
	// Paused reports whether playback is paused.
	Paused() bool

	// Position returns the playback position.
	Position() time.Duration
	// SetPosition moves the playback position.
	SetPosition(d time.Duration)
	// Duration returns the source duration; ok is false while unknown.
	Duration() (d time.Duration, ok bool)

	// Volume returns the linear volume in [0,1].
	Volume() float64
	// SetVolume sets the linear volume in [0,1].
	SetVolume(v float64)

	// Source returns the current source, empty if none was ever set.
	Source() string
	// SetSource loads a new source. The output stays paused.
	SetSource(uri string) error

	// Events returns the output event channel.
	Events() <-chan OutputEvent
}

// Ticker schedules the discrete steps of a fade.
type Ticker interface {
	// Every calls fn once per interval until fn returns false or stop is called.
	Every(interval time.Duration, fn func() bool) (stop func())
}

// WallTicker runs each schedule on its own goroutine using time.Ticker.
type WallTicker struct{}

// Every implements Ticker.
func (WallTicker) Every(interval time.Duration, fn func() bool) func() {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !fn() {
					cancel()
					return
				}
			}
		}
	}()

	return cancel
}
