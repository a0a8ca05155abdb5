// Package main provides the player daemon entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apiconnect "github.com/osa030/negativespace/internal/api/connect"
	"github.com/osa030/negativespace/internal/api/playerv1/playerv1connect"
	"github.com/osa030/negativespace/internal/app/playback"
	"github.com/osa030/negativespace/internal/app/player"
	"github.com/osa030/negativespace/internal/infra/audio"
	"github.com/osa030/negativespace/internal/infra/config"
	"github.com/osa030/negativespace/internal/infra/logger"
	"github.com/osa030/negativespace/internal/infra/metrics"
)

var (
	app        = kingpin.New("negativespace-server", "NegativeSpace player daemon")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// list-tracks command
	listTracksCmd = app.Command("list-tracks", "Print the configured catalog and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the player (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Initialize logger
	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
		File:   "",
	}
	// Override with command-line flags if specified
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Load config
	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if command == listTracksCmd.FullCommand() {
		if err := printTracks(cfg); err != nil {
			zlog.Fatal().Msgf("Failed to list tracks: %v", err)
		}
		return
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	cat, err := player.CatalogFromConfig(cfg.Catalog)
	if err != nil {
		return err
	}

	output, err := audio.Open(cfg.Output.Driver, cfg.Output.Settings)
	if err != nil {
		return errors.Wrap(err, "failed to open audio output")
	}
	defer output.Close()

	m := metrics.New()
	p, err := player.New(cat, output, m, player.Options{
		Playback: playback.Config{
			FadeOut:     cfg.Playback.FadeOut(),
			FadeIn:      cfg.Playback.FadeIn(),
			Step:        cfg.Playback.Step(),
			EventBuffer: cfg.Playback.EventBuffer,
		},
		Shuffle:  cfg.Playback.Shuffle,
		Autoplay: cfg.Playback.Autoplay,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create player")
	}

	// Create HTTP mux
	mux := http.NewServeMux()

	path, handler := playerv1connect.NewPlayerServiceHandler(
		apiconnect.NewPlayerService(p),
		connect.WithInterceptors(apiconnect.NewObservabilityInterceptor(m)),
	)
	mux.Handle(path, handler)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	// Create server with h2c (HTTP/2 cleartext) support
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to capture server startup errors
	serverErrCh := make(chan error, 1)
	serverStartedCh := make(chan struct{})

	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start player")
	}

	// Start server
	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		// Signal that we're about to start listening
		close(serverStartedCh)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	// Wait for server to start listening
	<-serverStartedCh
	// Give the server a moment to fully initialize
	time.Sleep(100 * time.Millisecond)

	// Execute startup hook if configured (after server is running)
	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	// Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		p.Stop()
		return errors.Wrap(err, "server error")
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop the player first to end active notification streams
	p.Stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")

	// Execute shutdown hook if configured
	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return nil
}

// printTracks prints the catalog as a table.
func printTracks(cfg *config.Config) error {
	cat, err := player.CatalogFromConfig(cfg.Catalog)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Artist", "Note", "File"})
	for _, tr := range cat.Tracks() {
		t.AppendRow(table.Row{tr.ID, tr.Title, tr.Artist, tr.Desc, tr.AudioRef})
	}
	t.Render()
	return nil
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		// Use sh -c to allow shell features like redirection or pipes
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
