// Package player assembles a running player: catalog, playback controller,
// shuffle sequencer, now-playing board, notifications and metrics.
package player

import (
	"context"
	"math/rand"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	playerv1 "github.com/osa030/negativespace/internal/api/playerv1"
	"github.com/osa030/negativespace/internal/app/notification"
	"github.com/osa030/negativespace/internal/app/nowplaying"
	"github.com/osa030/negativespace/internal/app/playback"
	"github.com/osa030/negativespace/internal/app/shuffle"
	"github.com/osa030/negativespace/internal/domain/catalog"
	"github.com/osa030/negativespace/internal/domain/track"
	"github.com/osa030/negativespace/internal/infra/metrics"
)

// ErrNotRunning is returned by Start on a stopped player.
var ErrNotRunning = errors.New("player is not running")

// Options configures a Player.
type Options struct {
	Playback playback.Config
	Shuffle  string          // Shuffle policy, see shuffle.New
	Autoplay bool            // Start with a shuffled track
	Rand     *rand.Rand      // nil uses shuffle.NewRand
	Ticker   playback.Ticker // nil uses playback.WallTicker
}

// Player is one running player session.
type Player struct {
	sessionID string
	autoplay  bool

	catalog      *catalog.Catalog
	output       playback.Output
	controller   *playback.Controller
	sequencer    shuffle.Sequencer
	board        *nowplaying.Board
	notification *notification.Manager
	metrics      *metrics.Metrics

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	done    chan struct{}
}

// New creates a player over output.
func New(cat *catalog.Catalog, output playback.Output, m *metrics.Metrics, opts Options) (*Player, error) {
	rng := opts.Rand
	if rng == nil {
		rng = shuffle.NewRand()
	}

	sequencer, err := shuffle.New(opts.Shuffle, rng)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sequencer")
	}

	if m == nil {
		m = metrics.New()
	}

	p := &Player{
		sessionID:    uuid.New().String(),
		autoplay:     opts.Autoplay,
		catalog:      cat,
		output:       output,
		controller:   playback.NewController(opts.Playback, cat, output, sequencer, opts.Ticker),
		sequencer:    sequencer,
		board:        nowplaying.NewBoard(),
		notification: notification.NewManager(),
		metrics:      m,
		done:         make(chan struct{}),
	}

	zlog.Info().Msgf("player created: session_id=%s tracks=%d shuffle=%s", p.sessionID, cat.Len(), sequencer.Name())
	return p, nil
}

// Start runs the output pump and the event loop until ctx ends or Stop is
// called. With autoplay the first shuffled track starts immediately.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrNotRunning
	}
	if p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		if err := p.controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zlog.Error().Msgf("output pump stopped: %v", err)
		}
	}()
	go func() {
		defer p.wg.Done()
		p.eventLoop()
	}()

	zlog.Info().Msgf("player started: session_id=%s", p.sessionID)

	if p.autoplay {
		if r := p.Next(); !r.Accepted {
			zlog.Warn().Msgf("autoplay ignored: reason=%s", r.Reason)
		}
	}
	return nil
}

// Stop stops fades and closes subscriptions. It is safe to call more than once.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	p.mu.Unlock()

	p.controller.Close()
	if cancel != nil {
		cancel()
	}
	p.wg.Wait()

	p.notification.Close()
	close(p.done)
	zlog.Info().Msgf("player stopped: session_id=%s", p.sessionID)
}

// Done is closed once the player has stopped.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// SessionID returns the id of this session.
func (p *Player) SessionID() string {
	return p.sessionID
}

// Tracks returns the catalog in display order.
func (p *Player) Tracks() []track.Track {
	return p.catalog.Tracks()
}

// Notifications returns the notification manager.
func (p *Player) Notifications() *notification.Manager {
	return p.notification
}

// Board returns the now-playing board.
func (p *Player) Board() *nowplaying.Board {
	return p.board
}

// Controller returns the playback controller.
func (p *Player) Controller() *playback.Controller {
	return p.controller
}

// eventLoop mirrors controller events into the board, metrics and
// subscribers until the controller closes its event channel.
func (p *Player) eventLoop() {
	defer func() {
		if r := recover(); r != nil {
			zlog.Error().Msgf("player event loop panicked: %v", r)
		}
	}()

	for ev := range p.controller.Events() {
		p.handleEvent(ev)
	}
}

func (p *Player) handleEvent(ev playback.Event) {
	p.board.Apply(ev)
	p.metrics.Events.WithLabelValues(ev.Type.String()).Inc()

	switch ev.Type {
	case playback.EventTrackChanged:
		p.metrics.TrackSwitches.Inc()
		p.broadcast(playerv1.NotificationTypeTrackChanged)

	case playback.EventPlayStateChanged:
		p.metrics.SetPlaying(ev.Playing)
		p.broadcast(playerv1.NotificationTypePlayState)

	case playback.EventProgress:
		p.broadcast(playerv1.NotificationTypeProgress)

	case playback.EventVolumeChanged:
		p.metrics.Volume.Set(ev.Volume)

	case playback.EventFadeOutDone, playback.EventFadeInDone, playback.EventTrackEnded:
		if ev.Track != nil {
			zlog.Debug().Msgf("playback event: type=%s id=%s", ev.Type, ev.Track.ID)
		}
	}
}

func (p *Player) broadcast(t playerv1.NotificationType) {
	p.notification.Broadcast(&playerv1.Notification{
		Type:   t,
		Status: p.Status(),
	})
}
