package playback

import (
	"time"

	"github.com/osa030/negativespace/internal/domain/track"
)

// EventType represents a playback event type.
type EventType int

const (
	EventTrackChanged     EventType = iota // Current track switched, emitted before fade-in starts
	EventPlayStateChanged                  // Output started or paused
	EventVolumeChanged                     // Volume changed (fade step or resume)
	EventProgress                          // Playback position advanced
	EventFadeOutDone                       // Fade-out reached silence and paused the output
	EventFadeInDone                        // Fade-in reached full volume
	EventTrackEnded                        // Output reached the end of the current track
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackChanged:
		return "track_changed"
	case EventPlayStateChanged:
		return "play_state_changed"
	case EventVolumeChanged:
		return "volume_changed"
	case EventProgress:
		return "progress"
	case EventFadeOutDone:
		return "fade_out_done"
	case EventFadeInDone:
		return "fade_in_done"
	case EventTrackEnded:
		return "track_ended"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type     EventType
	Track    *track.Track  // Current track (nil before the first switch)
	Playing  bool          // Output playing (EventPlayStateChanged)
	Volume   float64       // Output volume (EventVolumeChanged)
	Position time.Duration // Playback position (EventProgress)
	Duration time.Duration // Track duration, zero when unknown (EventProgress)
}

// OutputEventType represents a notification raised by an audio output.
type OutputEventType int

const (
	OutputStarted     OutputEventType = iota // Playback started or resumed
	OutputPaused                             // Playback paused
	OutputEnded                              // Source played to the end
	OutputTimeUpdated                        // Position advanced
)

// String returns the string representation of the output event type.
func (e OutputEventType) String() string {
	switch e {
	case OutputStarted:
		return "started"
	case OutputPaused:
		return "paused"
	case OutputEnded:
		return "ended"
	case OutputTimeUpdated:
		return "time_updated"
	default:
		return "unknown"
	}
}

// OutputEvent is delivered by an Output on its event channel.
type OutputEvent struct {
	Type OutputEventType
}
