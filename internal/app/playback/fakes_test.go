package playback

import (
	"fmt"
	"time"
)

// fakeOutput records every call the controller makes.
type fakeOutput struct {
	paused        bool
	position      time.Duration
	duration      time.Duration
	durationKnown bool
	volume        float64
	source        string
	playErr       error

	log     []string
	volumes []float64
	onCall  func()
	events  chan OutputEvent
}

func newFakeOutput() *fakeOutput {
	return &fakeOutput{
		paused: true,
		volume: 1.0,
		events: make(chan OutputEvent, 16),
	}
}

func (o *fakeOutput) record(entry string) {
	if o.onCall != nil {
		o.onCall()
	}
	o.log = append(o.log, entry)
}

func (o *fakeOutput) Play() error {
	if o.playErr != nil {
		o.record("play-refused")
		return o.playErr
	}
	o.record("play")
	o.paused = false
	return nil
}

func (o *fakeOutput) Pause() {
	o.record("pause")
	o.paused = true
}

func (o *fakeOutput) Paused() bool { return o.paused }

func (o *fakeOutput) Position() time.Duration { return o.position }

func (o *fakeOutput) SetPosition(d time.Duration) {
	o.record(fmt.Sprintf("seek:%v", d))
	o.position = d
}

func (o *fakeOutput) Duration() (time.Duration, bool) { return o.duration, o.durationKnown }

func (o *fakeOutput) Volume() float64 { return o.volume }

func (o *fakeOutput) SetVolume(v float64) {
	o.record(fmt.Sprintf("volume:%v", v))
	o.volumes = append(o.volumes, v)
	o.volume = v
}

func (o *fakeOutput) Source() string { return o.source }

func (o *fakeOutput) SetSource(uri string) error {
	o.record("source:" + uri)
	o.source = uri
	o.position = 0
	return nil
}

func (o *fakeOutput) Events() <-chan OutputEvent { return o.events }

// index returns the position of the first log entry equal to entry, or -1.
func (o *fakeOutput) index(entry string) int {
	for i, e := range o.log {
		if e == entry {
			return i
		}
	}
	return -1
}

// manualTicker runs scheduled steps only when Tick is called.
type manualTicker struct {
	tasks     []*manualTask
	intervals []time.Duration
}

type manualTask struct {
	fn      func() bool
	stopped bool
}

func (m *manualTicker) Every(interval time.Duration, fn func() bool) func() {
	task := &manualTask{fn: fn}
	m.tasks = append(m.tasks, task)
	m.intervals = append(m.intervals, interval)
	return func() { task.stopped = true }
}

// Tick runs every active task once.
func (m *manualTicker) Tick() {
	current := m.tasks
	m.tasks = nil
	for _, task := range current {
		if task.stopped {
			continue
		}
		if task.fn() && !task.stopped {
			m.tasks = append(m.tasks, task)
		}
	}
}

// Active returns the number of tasks still scheduled.
func (m *manualTicker) Active() int {
	n := 0
	for _, task := range m.tasks {
		if !task.stopped {
			n++
		}
	}
	return n
}

// Drain ticks until no task is left and returns the number of ticks.
func (m *manualTicker) Drain() int {
	ticks := 0
	for m.Active() > 0 && ticks < 10000 {
		m.Tick()
		ticks++
	}
	return ticks
}
