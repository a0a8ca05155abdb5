//go:build (linux && cgo) || windows || darwin

package audio

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/negativespace/internal/app/playback"
)

// SpeakerAvailable indicates whether the speaker driver is compiled in.
const SpeakerAvailable = true

var speakerOnce sync.Once

// Speaker plays local mp3 and wav files on the default sound device.
type Speaker struct {
	mu sync.Mutex

	sampleRate beep.SampleRate
	interval   time.Duration

	source   string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	gain     *effects.Gain
	volume   float64
	ended    bool
	queued   bool // Chain is in the speaker mixer
	gen      uint64

	events chan playback.OutputEvent
	stop   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewSpeaker initializes the sound device and returns the output.
func NewSpeaker(s SpeakerSettings) (*Speaker, error) {
	sr := beep.SampleRate(s.SampleRate)

	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(sr, sr.N(millis(s.BufferMs)))
	})
	if initErr != nil {
		return nil, errors.Wrap(initErr, "failed to initialize speaker")
	}

	o := &Speaker{
		sampleRate: sr,
		interval:   millis(s.ProgressIntervalMs),
		volume:     1.0,
		events:     make(chan playback.OutputEvent, eventBuffer),
		stop:       make(chan struct{}),
	}

	o.wg.Add(1)
	go o.loop()
	return o, nil
}

func (o *Speaker) loop() {
	defer o.wg.Done()

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			if !o.Paused() {
				o.mu.Lock()
				o.emitLocked(playback.OutputTimeUpdated)
				o.mu.Unlock()
			}
		}
	}
}

// decode opens uri and picks the decoder from its extension.
func decode(uri string) (beep.StreamSeekCloser, beep.Format, error) {
	path := strings.TrimPrefix(uri, "file://")

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "failed to open source")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, errors.Newf("unsupported source format: %s", path)
	}
}

// Play implements playback.Output.
func (o *Speaker) Play() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.streamer == nil {
		return ErrNoSource
	}
	if !o.pausedLocked() {
		return nil
	}

	speaker.Lock()
	if o.ended {
		if err := o.streamer.Seek(0); err != nil {
			speaker.Unlock()
			return errors.Wrap(err, "failed to rewind")
		}
		o.ended = false
	}
	o.ctrl.Paused = false
	speaker.Unlock()

	if !o.queued {
		o.queueLocked()
	}
	o.emitLocked(playback.OutputStarted)
	return nil
}

// queueLocked adds the current chain to the speaker mixer. The trailing
// callback reports the end of the source.
func (o *Speaker) queueLocked() {
	gen := o.gen
	o.queued = true
	speaker.Play(beep.Seq(o.gain, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		go o.handleEnded(gen)
	})))
}

func (o *Speaker) handleEnded(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || gen != o.gen {
		return
	}

	o.queued = false
	o.ended = true
	speaker.Lock()
	o.ctrl.Paused = true
	speaker.Unlock()

	o.emitLocked(playback.OutputPaused)
	o.emitLocked(playback.OutputEnded)
}

// Pause implements playback.Output.
func (o *Speaker) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pauseLocked()
}

func (o *Speaker) pauseLocked() {
	if o.pausedLocked() {
		return
	}
	speaker.Lock()
	o.ctrl.Paused = true
	speaker.Unlock()
	o.emitLocked(playback.OutputPaused)
}

// Paused implements playback.Output.
func (o *Speaker) Paused() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pausedLocked()
}

func (o *Speaker) pausedLocked() bool {
	if o.ctrl == nil || o.ended {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return o.ctrl.Paused
}

// Position implements playback.Output.
func (o *Speaker) Position() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := o.streamer.Position()
	speaker.Unlock()
	return o.format.SampleRate.D(pos)
}

// SetPosition implements playback.Output.
func (o *Speaker) SetPosition(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.streamer == nil {
		return
	}

	speaker.Lock()
	n := min(max(o.format.SampleRate.N(d), 0), o.streamer.Len())
	err := o.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		zlog.Debug().Msgf("audio: seek failed: %v", err)
		return
	}
	o.emitLocked(playback.OutputTimeUpdated)
}

// Duration implements playback.Output.
func (o *Speaker) Duration() (time.Duration, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.streamer == nil {
		return 0, false
	}
	return o.format.SampleRate.D(o.streamer.Len()), true
}

// Volume implements playback.Output.
func (o *Speaker) Volume() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

// SetVolume implements playback.Output. The gain is linear in v.
func (o *Speaker) SetVolume(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.volume = min(max(v, 0), 1)
	if o.gain == nil {
		return
	}
	speaker.Lock()
	o.gain.Gain = o.volume - 1
	speaker.Unlock()
}

// Source implements playback.Output.
func (o *Speaker) Source() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.source
}

// SetSource implements playback.Output. The previous source is detached from
// the mixer and closed. A source that fails to decode leaves the output
// loaded with no audible stream.
func (o *Speaker) SetSource(uri string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pauseLocked()
	o.releaseLocked()
	o.source = uri

	streamer, format, err := decode(uri)
	if err != nil {
		return err
	}

	o.streamer = streamer
	o.format = format
	o.ended = false
	o.ctrl = &beep.Ctrl{
		Streamer: beep.Resample(4, format.SampleRate, o.sampleRate, streamer),
		Paused:   true,
	}
	o.gain = &effects.Gain{Streamer: o.ctrl, Gain: o.volume - 1}
	return nil
}

// releaseLocked detaches and closes the current stream.
func (o *Speaker) releaseLocked() {
	o.gen++
	o.queued = false
	if o.ctrl != nil {
		speaker.Lock()
		// A nil streamer ends the chain, which drops it from the mixer.
		o.ctrl.Streamer = nil
		speaker.Unlock()
	}
	if o.streamer != nil {
		if err := o.streamer.Close(); err != nil {
			zlog.Debug().Msgf("audio: failed to close source: %v", err)
		}
	}
	o.streamer = nil
	o.ctrl = nil
	o.gain = nil
}

// Events implements playback.Output.
func (o *Speaker) Events() <-chan playback.OutputEvent {
	return o.events
}

// Close releases the source and closes the event channel.
func (o *Speaker) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.releaseLocked()
	o.closed = true
	close(o.stop)
	o.mu.Unlock()

	o.wg.Wait()

	o.mu.Lock()
	close(o.events)
	o.mu.Unlock()
	return nil
}

func (o *Speaker) emitLocked(t playback.OutputEventType) {
	if o.closed {
		return
	}
	send(o.events, playback.OutputEvent{Type: t})
}
