// Package playerv1connect wires the negativespace.v1 player API to
// connectrpc.com/connect.
package playerv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	playerv1 "github.com/osa030/negativespace/internal/api/playerv1"
)

// PlayerServiceName is the fully-qualified name of the PlayerService service.
const PlayerServiceName = "negativespace.v1.PlayerService"

// Procedure paths of PlayerService.
const (
	PlayerServiceListTracksProcedure   = "/negativespace.v1.PlayerService/ListTracks"
	PlayerServicePlayProcedure         = "/negativespace.v1.PlayerService/Play"
	PlayerServiceToggleProcedure       = "/negativespace.v1.PlayerService/Toggle"
	PlayerServiceNextProcedure         = "/negativespace.v1.PlayerService/Next"
	PlayerServiceSeekProcedure         = "/negativespace.v1.PlayerService/Seek"
	PlayerServiceGetStatusProcedure    = "/negativespace.v1.PlayerService/GetStatus"
	PlayerServiceSetImmersiveProcedure = "/negativespace.v1.PlayerService/SetImmersive"
	PlayerServiceSubscribeProcedure    = "/negativespace.v1.PlayerService/Subscribe"
)

// PlayerServiceHandler is implemented by the server.
type PlayerServiceHandler interface {
	ListTracks(context.Context, *connect.Request[playerv1.ListTracksRequest]) (*connect.Response[playerv1.ListTracksResponse], error)
	Play(context.Context, *connect.Request[playerv1.PlayRequest]) (*connect.Response[playerv1.ActionResponse], error)
	Toggle(context.Context, *connect.Request[playerv1.ToggleRequest]) (*connect.Response[playerv1.ActionResponse], error)
	Next(context.Context, *connect.Request[playerv1.NextRequest]) (*connect.Response[playerv1.ActionResponse], error)
	Seek(context.Context, *connect.Request[playerv1.SeekRequest]) (*connect.Response[playerv1.ActionResponse], error)
	GetStatus(context.Context, *connect.Request[playerv1.GetStatusRequest]) (*connect.Response[playerv1.GetStatusResponse], error)
	SetImmersive(context.Context, *connect.Request[playerv1.SetImmersiveRequest]) (*connect.Response[playerv1.ActionResponse], error)
	Subscribe(context.Context, *connect.Request[playerv1.SubscribeRequest], *connect.ServerStream[playerv1.Notification]) error
}

// NewPlayerServiceHandler builds an HTTP handler for svc. It returns the
// path to mount the handler on.
func NewPlayerServiceHandler(svc PlayerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(playerv1.Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(PlayerServiceListTracksProcedure, connect.NewUnaryHandler(PlayerServiceListTracksProcedure, svc.ListTracks, opts...))
	mux.Handle(PlayerServicePlayProcedure, connect.NewUnaryHandler(PlayerServicePlayProcedure, svc.Play, opts...))
	mux.Handle(PlayerServiceToggleProcedure, connect.NewUnaryHandler(PlayerServiceToggleProcedure, svc.Toggle, opts...))
	mux.Handle(PlayerServiceNextProcedure, connect.NewUnaryHandler(PlayerServiceNextProcedure, svc.Next, opts...))
	mux.Handle(PlayerServiceSeekProcedure, connect.NewUnaryHandler(PlayerServiceSeekProcedure, svc.Seek, opts...))
	mux.Handle(PlayerServiceGetStatusProcedure, connect.NewUnaryHandler(PlayerServiceGetStatusProcedure, svc.GetStatus, opts...))
	mux.Handle(PlayerServiceSetImmersiveProcedure, connect.NewUnaryHandler(PlayerServiceSetImmersiveProcedure, svc.SetImmersive, opts...))
	mux.Handle(PlayerServiceSubscribeProcedure, connect.NewServerStreamHandler(PlayerServiceSubscribeProcedure, svc.Subscribe, opts...))

	return "/" + PlayerServiceName + "/", mux
}

// PlayerServiceClient is a client for PlayerService.
type PlayerServiceClient struct {
	listTracks   *connect.Client[playerv1.ListTracksRequest, playerv1.ListTracksResponse]
	play         *connect.Client[playerv1.PlayRequest, playerv1.ActionResponse]
	toggle       *connect.Client[playerv1.ToggleRequest, playerv1.ActionResponse]
	next         *connect.Client[playerv1.NextRequest, playerv1.ActionResponse]
	seek         *connect.Client[playerv1.SeekRequest, playerv1.ActionResponse]
	getStatus    *connect.Client[playerv1.GetStatusRequest, playerv1.GetStatusResponse]
	setImmersive *connect.Client[playerv1.SetImmersiveRequest, playerv1.ActionResponse]
	subscribe    *connect.Client[playerv1.SubscribeRequest, playerv1.Notification]
}

// NewPlayerServiceClient creates a client for the server at baseURL
// (e.g. http://localhost:8080).
func NewPlayerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlayerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(playerv1.Codec{})}, opts...)

	return &PlayerServiceClient{
		listTracks:   connect.NewClient[playerv1.ListTracksRequest, playerv1.ListTracksResponse](httpClient, baseURL+PlayerServiceListTracksProcedure, opts...),
		play:         connect.NewClient[playerv1.PlayRequest, playerv1.ActionResponse](httpClient, baseURL+PlayerServicePlayProcedure, opts...),
		toggle:       connect.NewClient[playerv1.ToggleRequest, playerv1.ActionResponse](httpClient, baseURL+PlayerServiceToggleProcedure, opts...),
		next:         connect.NewClient[playerv1.NextRequest, playerv1.ActionResponse](httpClient, baseURL+PlayerServiceNextProcedure, opts...),
		seek:         connect.NewClient[playerv1.SeekRequest, playerv1.ActionResponse](httpClient, baseURL+PlayerServiceSeekProcedure, opts...),
		getStatus:    connect.NewClient[playerv1.GetStatusRequest, playerv1.GetStatusResponse](httpClient, baseURL+PlayerServiceGetStatusProcedure, opts...),
		setImmersive: connect.NewClient[playerv1.SetImmersiveRequest, playerv1.ActionResponse](httpClient, baseURL+PlayerServiceSetImmersiveProcedure, opts...),
		subscribe:    connect.NewClient[playerv1.SubscribeRequest, playerv1.Notification](httpClient, baseURL+PlayerServiceSubscribeProcedure, opts...),
	}
}

// ListTracks calls negativespace.v1.PlayerService.ListTracks.
func (c *PlayerServiceClient) ListTracks(ctx context.Context, req *connect.Request[playerv1.ListTracksRequest]) (*connect.Response[playerv1.ListTracksResponse], error) {
	return c.listTracks.CallUnary(ctx, req)
}

// Play calls negativespace.v1.PlayerService.Play.
func (c *PlayerServiceClient) Play(ctx context.Context, req *connect.Request[playerv1.PlayRequest]) (*connect.Response[playerv1.ActionResponse], error) {
	return c.play.CallUnary(ctx, req)
}

// Toggle calls negativespace.v1.PlayerService.Toggle.
func (c *PlayerServiceClient) Toggle(ctx context.Context, req *connect.Request[playerv1.ToggleRequest]) (*connect.Response[playerv1.ActionResponse], error) {
	return c.toggle.CallUnary(ctx, req)
}

// Next calls negativespace.v1.PlayerService.Next.
func (c *PlayerServiceClient) Next(ctx context.Context, req *connect.Request[playerv1.NextRequest]) (*connect.Response[playerv1.ActionResponse], error) {
	return c.next.CallUnary(ctx, req)
}

// Seek calls negativespace.v1.PlayerService.Seek.
func (c *PlayerServiceClient) Seek(ctx context.Context, req *connect.Request[playerv1.SeekRequest]) (*connect.Response[playerv1.ActionResponse], error) {
	return c.seek.CallUnary(ctx, req)
}

// GetStatus calls negativespace.v1.PlayerService.GetStatus.
func (c *PlayerServiceClient) GetStatus(ctx context.Context, req *connect.Request[playerv1.GetStatusRequest]) (*connect.Response[playerv1.GetStatusResponse], error) {
	return c.getStatus.CallUnary(ctx, req)
}

// SetImmersive calls negativespace.v1.PlayerService.SetImmersive.
func (c *PlayerServiceClient) SetImmersive(ctx context.Context, req *connect.Request[playerv1.SetImmersiveRequest]) (*connect.Response[playerv1.ActionResponse], error) {
	return c.setImmersive.CallUnary(ctx, req)
}

// Subscribe calls negativespace.v1.PlayerService.Subscribe.
func (c *PlayerServiceClient) Subscribe(ctx context.Context, req *connect.Request[playerv1.SubscribeRequest]) (*connect.ServerStreamForClient[playerv1.Notification], error) {
	return c.subscribe.CallServerStream(ctx, req)
}
