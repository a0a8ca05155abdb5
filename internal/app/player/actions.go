package player

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	playerv1 "github.com/osa030/negativespace/internal/api/playerv1"
	"github.com/osa030/negativespace/internal/app/notification"
	"github.com/osa030/negativespace/internal/app/nowplaying"
	"github.com/osa030/negativespace/internal/app/playback"
	"github.com/osa030/negativespace/internal/domain/track"
)

// Result is the outcome of a control request. Ignored requests carry a
// reason code and are never errors.
type Result struct {
	Accepted bool
	Reason   string
}

// Reason maps an ignored-request error to its reason code.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, playback.ErrUnknownTrack):
		return playerv1.ReasonUnknownTrack
	case errors.Is(err, playback.ErrSwitching):
		return playerv1.ReasonSwitching
	case errors.Is(err, playback.ErrNoTrack), errors.Is(err, nowplaying.ErrNoTrack):
		return playerv1.ReasonNoTrack
	case errors.Is(err, playback.ErrDurationUnknown):
		return playerv1.ReasonDurationUnknown
	case errors.Is(err, playback.ErrClosed):
		return playerv1.ReasonClosed
	default:
		return playerv1.ReasonInvalidArgument
	}
}

func (p *Player) result(action string, err error) Result {
	reason := Reason(err)
	p.metrics.ObserveRequest(action, reason)
	if reason != "" {
		zlog.Debug().Msgf("request ignored: action=%s reason=%s", action, reason)
		return Result{Reason: reason}
	}
	return Result{Accepted: true}
}

// Play switches to the track with the given id, or toggles it when it is
// already current.
func (p *Player) Play(id track.ID) Result {
	return p.result("play", p.controller.RequestPlay(id))
}

// Toggle pauses or resumes the current track.
func (p *Player) Toggle() Result {
	return p.result("toggle", p.controller.Toggle())
}

// Next plays the next shuffled track.
func (p *Player) Next() Result {
	return p.result("next", p.controller.Next())
}

// Seek moves playback to fraction of the track duration.
func (p *Player) Seek(fraction float64) Result {
	return p.result("seek", p.controller.Seek(fraction))
}

// SeekClick seeks to a click at clickX on a progress line of the given width.
func (p *Player) SeekClick(clickX, width float64) Result {
	fraction, ok := nowplaying.SeekFraction(clickX, width)
	if !ok {
		return p.result("seek", errors.Newf("invalid progress width: %v", width))
	}
	return p.Seek(fraction)
}

// SetImmersive opens or closes the immersive view. Opening is refused
// while no track is current.
func (p *Player) SetImmersive(open bool) Result {
	var err error
	if open {
		err = p.board.OpenImmersive()
	} else {
		p.board.CloseImmersive()
	}

	r := p.result("immersive", err)
	if r.Accepted {
		p.broadcast(playerv1.NotificationTypeImmersive)
	}
	return r
}

// Subscribe registers a notification stream. The caller sends the initial
// state itself.
func (p *Player) Subscribe(stream notification.Stream) string {
	id := p.notification.Subscribe(stream)
	p.metrics.Subscribers.Set(float64(p.notification.SubscriberCount()))
	return id
}

// Unsubscribe removes a notification stream.
func (p *Player) Unsubscribe(id string) {
	p.notification.Unsubscribe(id)
	p.metrics.Subscribers.Set(float64(p.notification.SubscriberCount()))
}

// InitialState builds the first notification of a subscription.
func (p *Player) InitialState() *playerv1.Notification {
	return &playerv1.Notification{
		Type:       playerv1.NotificationTypeInitialState,
		SequenceNo: p.notification.NextSequenceNo(),
		Status:     p.Status(),
	}
}
