package audio

import (
	"sync"
	"time"

	"github.com/osa030/negativespace/internal/app/playback"
)

// Null simulates an audio output with the wall clock. Every source lasts
// the configured track length and nothing is audible.
type Null struct {
	mu sync.Mutex

	length   time.Duration
	interval time.Duration
	now      func() time.Time

	source    string
	paused    bool
	base      time.Duration // Position when playback last (re)started
	startedAt time.Time
	volume    float64

	events chan playback.OutputEvent
	stop   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewNull creates a null output and starts its clock.
func NewNull(s NullSettings) *Null {
	n := newNull(s, time.Now)

	n.wg.Add(1)
	go n.loop()
	return n
}

func newNull(s NullSettings, now func() time.Time) *Null {
	return &Null{
		length:   time.Duration(s.TrackLengthSec) * time.Second,
		interval: millis(s.ProgressIntervalMs),
		now:      now,
		paused:   true,
		volume:   1.0,
		events:   make(chan playback.OutputEvent, eventBuffer),
		stop:     make(chan struct{}),
	}
}

func (n *Null) loop() {
	defer n.wg.Done()

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-n.stop:
			return
		case <-ticker.C:
			n.tick()
		}
	}
}

// tick reports progress and detects the end of the source.
func (n *Null) tick() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || n.paused || n.source == "" {
		return
	}

	pos := n.positionLocked()
	if pos < n.length {
		n.emitLocked(playback.OutputTimeUpdated)
		return
	}

	n.base = n.length
	n.paused = true
	n.emitLocked(playback.OutputTimeUpdated)
	n.emitLocked(playback.OutputPaused)
	n.emitLocked(playback.OutputEnded)
}

// Play implements playback.Output.
func (n *Null) Play() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.source == "" {
		return ErrNoSource
	}
	if !n.paused {
		return nil
	}
	if n.base >= n.length {
		n.base = 0
	}

	n.paused = false
	n.startedAt = n.now()
	n.emitLocked(playback.OutputStarted)
	return nil
}

// Pause implements playback.Output.
func (n *Null) Pause() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pauseLocked()
}

func (n *Null) pauseLocked() {
	if n.paused {
		return
	}
	n.base = n.positionLocked()
	n.paused = true
	n.emitLocked(playback.OutputPaused)
}

// Paused implements playback.Output.
func (n *Null) Paused() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.paused
}

// Position implements playback.Output.
func (n *Null) Position() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.positionLocked()
}

func (n *Null) positionLocked() time.Duration {
	pos := n.base
	if !n.paused {
		pos += n.now().Sub(n.startedAt)
	}
	return min(pos, n.length)
}

// SetPosition implements playback.Output.
func (n *Null) SetPosition(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.source == "" {
		return
	}
	n.base = min(max(d, 0), n.length)
	n.startedAt = n.now()
	n.emitLocked(playback.OutputTimeUpdated)
}

// Duration implements playback.Output.
func (n *Null) Duration() (time.Duration, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.source == "" {
		return 0, false
	}
	return n.length, true
}

// Volume implements playback.Output.
func (n *Null) Volume() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.volume
}

// SetVolume implements playback.Output.
func (n *Null) SetVolume(v float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.volume = min(max(v, 0), 1)
}

// Source implements playback.Output.
func (n *Null) Source() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.source
}

// SetSource implements playback.Output.
func (n *Null) SetSource(uri string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pauseLocked()
	n.source = uri
	n.base = 0
	return nil
}

// Events implements playback.Output.
func (n *Null) Events() <-chan playback.OutputEvent {
	return n.events
}

// Close stops the clock and closes the event channel.
func (n *Null) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.stop)
	n.mu.Unlock()

	n.wg.Wait()

	n.mu.Lock()
	close(n.events)
	n.mu.Unlock()
	return nil
}

func (n *Null) emitLocked(t playback.OutputEventType) {
	if n.closed {
		return
	}
	send(n.events, playback.OutputEvent{Type: t})
}
