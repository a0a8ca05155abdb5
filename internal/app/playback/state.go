// Package playback provides track switching with crossfades over an audio output.
package playback

// State represents the playback state.
type State int

const (
	StateIdle    State = iota // No track loaded yet
	StatePlaying              // Output is playing
	StatePaused               // Output is paused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Phase represents the step of a track transition.
type Phase int

const (
	PhaseIdle       Phase = iota // No fade running
	PhaseFadingOut               // Lowering the outgoing track to silence
	PhaseSwapping                // Assigning the new source
	PhaseFadingIn                // Raising the incoming track to full volume
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFadingOut:
		return "fading_out"
	case PhaseSwapping:
		return "swapping"
	case PhaseFadingIn:
		return "fading_in"
	default:
		return "unknown"
	}
}
