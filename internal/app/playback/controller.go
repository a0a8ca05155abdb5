package playback

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/negativespace/internal/app/shuffle"
	"github.com/osa030/negativespace/internal/domain/catalog"
	"github.com/osa030/negativespace/internal/domain/track"
)

// Errors returned for requests that are ignored. None of them is fatal.
var (
	ErrUnknownTrack    = errors.New("unknown track")
	ErrSwitching       = errors.New("track switch in progress")
	ErrNoTrack         = errors.New("no track loaded")
	ErrDurationUnknown = errors.New("duration unknown")
	ErrClosed          = errors.New("controller closed")
)

// Default fade timings.
const (
	DefaultFadeOut     = 400 * time.Millisecond
	DefaultFadeIn      = 600 * time.Millisecond
	DefaultStep        = 20 * time.Millisecond
	DefaultEventBuffer = 1024
)

// Config holds controller configuration.
type Config struct {
	FadeOut     time.Duration // Fade-out length
	FadeIn      time.Duration // Fade-in length
	Step        time.Duration // Interval between fade steps
	EventBuffer int           // Event channel capacity
}

func (c Config) withDefaults() Config {
	if c.FadeOut <= 0 {
		c.FadeOut = DefaultFadeOut
	}
	if c.FadeIn <= 0 {
		c.FadeIn = DefaultFadeIn
	}
	if c.Step <= 0 {
		c.Step = DefaultStep
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = DefaultEventBuffer
	}
	return c
}

// steps returns how many fade steps fit into d, at least one.
func (c Config) steps(d time.Duration) int {
	n := int(d / c.Step)
	if n < 1 {
		return 1
	}
	return n
}

// Status is a snapshot of the controller state.
type Status struct {
	Current       *track.Track // nil until the first track is chosen
	State         State
	Phase         Phase
	Switching     bool
	Volume        float64
	Position      time.Duration
	Duration      time.Duration
	DurationKnown bool
}

// Controller switches tracks on an Output with a fade-out, a source swap and
// a fade-in. While a switch is in flight, requests for other tracks are
// dropped.
type Controller struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	output    Output
	sequencer shuffle.Sequencer
	ticker    Ticker
	config    Config

	// Playback state
	currentID track.ID
	switching bool
	phase     Phase
	volume    float64

	// In-flight fade. fadeID is bumped for every fade so that a step
	// scheduled by a superseded fade does nothing.
	fadeID   uint64
	fadeStop func()

	// Events
	eventCh chan Event
	closed  bool
}

// NewController creates a new playback controller. A nil ticker uses WallTicker.
func NewController(config Config, cat *catalog.Catalog, output Output, sequencer shuffle.Sequencer, ticker Ticker) *Controller {
	if ticker == nil {
		ticker = WallTicker{}
	}
	config = config.withDefaults()

	return &Controller{
		catalog:   cat,
		output:    output,
		sequencer: sequencer,
		ticker:    ticker,
		config:    config,
		currentID: track.NoID,
		phase:     PhaseIdle,
		volume:    output.Volume(),
		eventCh:   make(chan Event, config.EventBuffer),
	}
}

// Events returns the event channel.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// RequestPlay switches to the track with the given id.
//
// Requesting the current track toggles play/pause. While a switch is in
// progress the request is dropped with ErrSwitching. The call returns as
// soon as the transition is scheduled.
func (c *Controller) RequestPlay(id track.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.requestPlayLocked(id)
}

func (c *Controller) requestPlayLocked(id track.ID) error {
	if c.closed {
		return ErrClosed
	}
	if c.switching {
		zlog.Debug().Msgf("playback: switch in progress, dropping request: id=%s", id)
		return ErrSwitching
	}

	t, ok := c.catalog.Find(id)
	if !ok {
		zlog.Debug().Msgf("playback: unknown track requested: id=%s", id)
		return ErrUnknownTrack
	}

	if id == c.currentID {
		return c.toggleLocked()
	}

	c.switching = true
	c.fadeOutLocked(func() {
		c.swapLocked(t)
	})

	return nil
}

// Toggle resumes at full volume when paused, pauses otherwise.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	return c.toggleLocked()
}

func (c *Controller) toggleLocked() error {
	if c.output.Source() == "" {
		return ErrNoTrack
	}

	if c.output.Paused() {
		c.setVolumeLocked(1.0)
		c.safePlayLocked()
	} else {
		c.output.Pause()
	}
	return nil
}

// Seek moves playback to fraction (clamped to [0,1]) of the track duration.
func (c *Controller) Seek(fraction float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	duration, ok := c.output.Duration()
	if !ok || duration <= 0 {
		return ErrDurationUnknown
	}

	fraction = min(max(fraction, 0), 1)
	c.output.SetPosition(time.Duration(fraction * float64(duration)))
	return nil
}

// Next asks the sequencer for the following track and plays it.
// In a single-track catalog the current track restarts from the beginning.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.nextLocked()
}

func (c *Controller) nextLocked() error {
	if c.closed {
		return ErrClosed
	}
	// Checked before consulting the sequencer so a dropped advance does
	// not consume an entry of the current pass.
	if c.switching {
		return ErrSwitching
	}

	next, ok := c.sequencer.Next(c.catalog.IDs(), c.currentID)
	if !ok {
		return ErrUnknownTrack
	}

	if next == c.currentID {
		c.output.SetPosition(0)
		c.safePlayLocked()
		return nil
	}

	return c.requestPlayLocked(next)
}

// HandleOutputEvent reacts to a notification from the output.
func (c *Controller) HandleOutputEvent(ev OutputEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	switch ev.Type {
	case OutputStarted:
		c.emitLocked(Event{Type: EventPlayStateChanged, Playing: true})
	case OutputPaused:
		c.emitLocked(Event{Type: EventPlayStateChanged, Playing: false})
	case OutputTimeUpdated:
		duration, ok := c.output.Duration()
		if !ok {
			return
		}
		c.emitLocked(Event{Type: EventProgress, Position: c.output.Position(), Duration: duration})
	case OutputEnded:
		c.emitLocked(Event{Type: EventTrackEnded})
		if err := c.nextLocked(); err != nil {
			zlog.Debug().Msgf("playback: auto-advance ignored: %v", err)
		}
	}
}

// Run forwards output events to HandleOutputEvent until ctx is done or the
// output closes its event channel.
func (c *Controller) Run(ctx context.Context) error {
	events := c.output.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.HandleOutputEvent(ev)
		}
	}
}

// CurrentID returns the id of the current track, track.NoID if none.
func (c *Controller) CurrentID() track.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentID
}

// IsSwitching reports whether a track switch is in flight.
func (c *Controller) IsSwitching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.switching
}

// Status returns a snapshot of the controller state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		Current:   c.currentTrackLocked(),
		Phase:     c.phase,
		Switching: c.switching,
		Volume:    c.volume,
		Position:  c.output.Position(),
	}
	s.Duration, s.DurationKnown = c.output.Duration()

	switch {
	case c.output.Source() == "":
		s.State = StateIdle
	case c.output.Paused():
		s.State = StatePaused
	default:
		s.State = StatePlaying
	}
	return s
}

// Close stops any running fade and closes the event channel.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.stopFadeLocked()
	c.closed = true
	close(c.eventCh)
}

// fadeOutLocked lowers the volume to silence, pauses the output and calls
// done. A paused output calls done immediately.
func (c *Controller) fadeOutLocked(done func()) {
	// A new fade-out supersedes a fade-in still ramping up.
	c.stopFadeLocked()

	if c.output.Paused() {
		done()
		return
	}

	c.phase = PhaseFadingOut
	gap := c.volume / float64(c.config.steps(c.config.FadeOut))

	c.startFadeLocked(func() bool {
		if c.volume > gap {
			c.setVolumeLocked(c.volume - gap)
			return true
		}

		c.setVolumeLocked(0)
		c.fadeStop = nil
		c.output.Pause()
		c.emitLocked(Event{Type: EventFadeOutDone, Track: c.currentTrackLocked()})
		done()
		return false
	})
}

// swapLocked makes t current, loads its source and starts the fade-in.
// The switching lock is released once the fade-in is initiated.
func (c *Controller) swapLocked(t track.Track) {
	c.phase = PhaseSwapping
	c.currentID = t.ID

	if err := c.output.SetSource(t.AudioRef); err != nil {
		zlog.Warn().Msgf("playback: failed to load source: id=%s source=%s: %v", t.ID, t.AudioRef, err)
	}

	zlog.Info().Msgf("playback: track changed: id=%s title=%s artist=%s", t.ID, t.Title, t.Artist)
	c.emitLocked(Event{Type: EventTrackChanged, Track: &t})

	c.fadeInLocked()
	c.switching = false
}

// fadeInLocked starts playback from silence and raises the volume to 1.0.
func (c *Controller) fadeInLocked() {
	c.stopFadeLocked()

	c.phase = PhaseFadingIn
	c.setVolumeLocked(0)
	c.safePlayLocked()

	gap := 1.0 / float64(c.config.steps(c.config.FadeIn))

	c.startFadeLocked(func() bool {
		if c.volume < 1.0-gap {
			c.setVolumeLocked(c.volume + gap)
			return true
		}

		c.setVolumeLocked(1.0)
		c.fadeStop = nil
		c.phase = PhaseIdle
		c.emitLocked(Event{Type: EventFadeInDone, Track: c.currentTrackLocked()})
		return false
	})
}

// startFadeLocked schedules step on the ticker under a fresh fade id.
func (c *Controller) startFadeLocked(step func() bool) {
	c.fadeID++
	id := c.fadeID

	c.fadeStop = c.ticker.Every(c.config.Step, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed || id != c.fadeID {
			return false
		}
		return step()
	})
}

// stopFadeLocked cancels the in-flight fade, if any.
func (c *Controller) stopFadeLocked() {
	c.fadeID++
	if c.fadeStop != nil {
		c.fadeStop()
		c.fadeStop = nil
	}
}

// safePlayLocked starts the output and swallows refusals.
func (c *Controller) safePlayLocked() {
	if c.output.Source() == "" {
		return
	}
	if err := c.output.Play(); err != nil {
		zlog.Debug().Msgf("playback: output refused to play: %v", err)
	}
}

func (c *Controller) setVolumeLocked(v float64) {
	c.volume = v
	c.output.SetVolume(v)
	c.emitLocked(Event{Type: EventVolumeChanged, Volume: v})
}

func (c *Controller) currentTrackLocked() *track.Track {
	t, ok := c.catalog.Find(c.currentID)
	if !ok {
		return nil
	}
	return &t
}

// emitLocked sends an event without blocking.
// Must be called with lock held.
func (c *Controller) emitLocked(e Event) {
	if c.closed {
		return
	}
	if e.Track == nil {
		e.Track = c.currentTrackLocked()
	}
	select {
	case c.eventCh <- e:
	default:
		// Channel full, drop event
	}
}
