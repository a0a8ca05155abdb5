// Package main provides the player control CLI.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	playerv1 "github.com/osa030/negativespace/internal/api/playerv1"
	"github.com/osa030/negativespace/internal/api/playerv1/playerv1connect"
)

var (
	app    = kingpin.New("negativespace", "NegativeSpace player control client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").Envar("NEGATIVESPACE_SERVER").String()

	// list command
	listCmd   = app.Command("list", "List the catalog")
	listCards = listCmd.Flag("cards", "Render the catalog as cards").Bool()

	// play command
	playCmd     = app.Command("play", "Play a track, or toggle it if it is current")
	playTrackID = playCmd.Arg("track-id", "Track ID").Required().Int()

	toggleCmd = app.Command("toggle", "Toggle play/pause")
	nextCmd   = app.Command("next", "Switch to the next shuffled track")

	// seek command
	seekCmd      = app.Command("seek", "Seek to a fraction of the current track")
	seekFraction = seekCmd.Arg("fraction", "Position between 0 and 1").Required().Float64()

	statusCmd = app.Command("status", "Show the now-playing bar")

	// immersive command
	immersiveCmd  = app.Command("immersive", "Open or close the immersive view")
	immersiveMode = immersiveCmd.Arg("mode", "open or close").Required().Enum("open", "close")

	watchCmd = app.Command("watch", "Subscribe to player notifications")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	client := playerv1connect.NewPlayerServiceClient(http.DefaultClient, *server)

	ctx := context.Background()

	// Execute command
	switch command {
	case listCmd.FullCommand():
		list(ctx, client, *listCards)
	case playCmd.FullCommand():
		printAction(client.Play(ctx, connect.NewRequest(&playerv1.PlayRequest{TrackId: *playTrackID})))
	case toggleCmd.FullCommand():
		printAction(client.Toggle(ctx, connect.NewRequest(&playerv1.ToggleRequest{})))
	case nextCmd.FullCommand():
		printAction(client.Next(ctx, connect.NewRequest(&playerv1.NextRequest{})))
	case seekCmd.FullCommand():
		fraction := *seekFraction
		printAction(client.Seek(ctx, connect.NewRequest(&playerv1.SeekRequest{Fraction: &fraction})))
	case statusCmd.FullCommand():
		status(ctx, client)
	case immersiveCmd.FullCommand():
		open := *immersiveMode == "open"
		printAction(client.SetImmersive(ctx, connect.NewRequest(&playerv1.SetImmersiveRequest{Open: open})))
	case watchCmd.FullCommand():
		watch(ctx, client)
	}
}

func list(ctx context.Context, client *playerv1connect.PlayerServiceClient, cards bool) {
	resp, err := client.ListTracks(ctx, connect.NewRequest(&playerv1.ListTracksRequest{}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// The current track is best effort; the catalog is still listed without it.
	current := 0
	if st, err := client.GetStatus(ctx, connect.NewRequest(&playerv1.GetStatusRequest{})); err == nil {
		current = currentID(st.Msg.Status)
	}

	if cards {
		fmt.Println(renderCards(resp.Msg.Tracks, current))
		return
	}
	renderTable(os.Stdout, resp.Msg.Tracks, current)
}

func status(ctx context.Context, client *playerv1connect.PlayerServiceClient) {
	resp, err := client.GetStatus(ctx, connect.NewRequest(&playerv1.GetStatusRequest{}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(renderStatus(resp.Msg.Status))
}

func printAction(resp *connect.Response[playerv1.ActionResponse], err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if resp.Msg.Accepted {
		fmt.Println("Accepted")
	} else {
		fmt.Printf("Ignored [%s]\n", resp.Msg.Reason)
	}
	if bar := renderStatus(resp.Msg.Status); bar != "" {
		fmt.Println(bar)
	}
}

func watch(ctx context.Context, client *playerv1connect.PlayerServiceClient) {
	stream, err := client.Subscribe(ctx, connect.NewRequest(&playerv1.SubscribeRequest{}))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Subscribed to notifications. Press Ctrl+C to exit.")

	// Handle shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nUnsubscribing...")
		os.Exit(0)
	}()

	// Receive notifications
	for stream.Receive() {
		printNotification(stream.Msg())
	}

	if err := stream.Err(); err != nil {
		fmt.Printf("Stream error: %v\n", err)
	}
}

func printNotification(n *playerv1.Notification) {
	fmt.Printf("\n[Sequence: %d] ", n.SequenceNo)

	switch n.Type {
	case playerv1.NotificationTypeInitialState:
		fmt.Println("=== INITIAL STATE ===")
	case playerv1.NotificationTypeTrackChanged:
		fmt.Println("=== TRACK CHANGED ===")
	case playerv1.NotificationTypePlayState:
		fmt.Println("=== PLAY STATE ===")
	case playerv1.NotificationTypeProgress:
		fmt.Println("=== PROGRESS ===")
	case playerv1.NotificationTypeImmersive:
		fmt.Println("=== IMMERSIVE ===")
	default:
		fmt.Printf("=== UNKNOWN EVENT (%v) ===\n", n.Type)
	}

	fmt.Println(renderStatus(n.Status))
}
