//go:build !((linux && cgo) || windows || darwin)

package audio

import (
	"time"

	"github.com/osa030/negativespace/internal/app/playback"
)

// SpeakerAvailable indicates whether the speaker driver is compiled in.
// The sound device backends require cgo on linux.
const SpeakerAvailable = false

// Speaker is a placeholder for builds without a sound backend.
type Speaker struct{}

// NewSpeaker always fails with ErrUnavailable.
func NewSpeaker(SpeakerSettings) (*Speaker, error) {
	return nil, ErrUnavailable
}

func (*Speaker) Play() error { return ErrUnavailable }
func (*Speaker) Pause() {}
func (*Speaker) Paused() bool { return true }
func (*Speaker) Position() time.Duration { return 0 }
func (*Speaker) SetPosition(time.Duration) {}
func (*Speaker) Duration() (time.Duration, bool) { return 0, false }
func (*Speaker) Volume() float64 { return 0 }
func (*Speaker) SetVolume(float64) {}
func (*Speaker) Source() string { return "" }
func (*Speaker) SetSource(string) error { return ErrUnavailable }
func (*Speaker) Events() <-chan playback.OutputEvent { return nil }
func (*Speaker) Close() error { return nil }
