// Package connect provides Connect RPC service implementations.
package connect

import (
	"context"

	"connectrpc.com/connect"

	playerv1 "github.com/osa030/negativespace/internal/api/playerv1"
	"github.com/osa030/negativespace/internal/api/playerv1/playerv1connect"
	"github.com/osa030/negativespace/internal/app/player"
	"github.com/osa030/negativespace/internal/domain/track"
)

// PlayerService implements the PlayerService RPC.
type PlayerService struct {
	player *player.Player
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(p *player.Player) *PlayerService {
	return &PlayerService{
		player: p,
	}
}

// Ensure PlayerService implements the interface.
var _ playerv1connect.PlayerServiceHandler = (*PlayerService)(nil)

// ListTracks returns the catalog in display order.
func (s *PlayerService) ListTracks(
	ctx context.Context,
	req *connect.Request[playerv1.ListTracksRequest],
) (*connect.Response[playerv1.ListTracksResponse], error) {
	return connect.NewResponse(&playerv1.ListTracksResponse{
		Tracks: player.TracksToProto(s.player.Tracks()),
	}), nil
}

// Play switches to a track, or toggles it when it is already current.
func (s *PlayerService) Play(
	ctx context.Context,
	req *connect.Request[playerv1.PlayRequest],
) (*connect.Response[playerv1.ActionResponse], error) {
	return s.action(s.player.Play(track.ID(req.Msg.TrackId))), nil
}

// Toggle pauses or resumes the current track.
func (s *PlayerService) Toggle(
	ctx context.Context,
	req *connect.Request[playerv1.ToggleRequest],
) (*connect.Response[playerv1.ActionResponse], error) {
	return s.action(s.player.Toggle()), nil
}

// Next plays the next shuffled track.
func (s *PlayerService) Next(
	ctx context.Context,
	req *connect.Request[playerv1.NextRequest],
) (*connect.Response[playerv1.ActionResponse], error) {
	return s.action(s.player.Next()), nil
}

// Seek handles a fraction or a click on the progress line.
func (s *PlayerService) Seek(
	ctx context.Context,
	req *connect.Request[playerv1.SeekRequest],
) (*connect.Response[playerv1.ActionResponse], error) {
	if req.Msg.Fraction != nil {
		return s.action(s.player.Seek(*req.Msg.Fraction)), nil
	}
	return s.action(s.player.SeekClick(req.Msg.ClickX, req.Msg.Width)), nil
}

// GetStatus returns the player state.
func (s *PlayerService) GetStatus(
	ctx context.Context,
	req *connect.Request[playerv1.GetStatusRequest],
) (*connect.Response[playerv1.GetStatusResponse], error) {
	return connect.NewResponse(&playerv1.GetStatusResponse{
		Status: s.player.Status(),
	}), nil
}

// SetImmersive opens or closes the immersive view.
func (s *PlayerService) SetImmersive(
	ctx context.Context,
	req *connect.Request[playerv1.SetImmersiveRequest],
) (*connect.Response[playerv1.ActionResponse], error) {
	return s.action(s.player.SetImmersive(req.Msg.Open)), nil
}

// Subscribe streams notifications. The first message is the initial state.
func (s *PlayerService) Subscribe(
	ctx context.Context,
	req *connect.Request[playerv1.SubscribeRequest],
	stream *connect.ServerStream[playerv1.Notification],
) error {
	if err := stream.Send(s.player.InitialState()); err != nil {
		return err
	}

	adapter := &notificationStreamAdapter{stream: stream}
	subscriptionID := s.player.Subscribe(adapter)
	defer s.player.Unsubscribe(subscriptionID)

	// Wait for context cancellation or player stop
	select {
	case <-ctx.Done():
	case <-s.player.Done():
	}
	return nil
}

func (s *PlayerService) action(r player.Result) *connect.Response[playerv1.ActionResponse] {
	return connect.NewResponse(&playerv1.ActionResponse{
		Accepted: r.Accepted,
		Reason:   r.Reason,
		Status:   s.player.Status(),
	})
}

// notificationStreamAdapter adapts connect.ServerStream to notification.Stream.
type notificationStreamAdapter struct {
	stream *connect.ServerStream[playerv1.Notification]
}

func (a *notificationStreamAdapter) Send(notification *playerv1.Notification) error {
	return a.stream.Send(notification)
}
