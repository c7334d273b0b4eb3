package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/jokecast/internal/rating"
	"github.com/vietddude/jokecast/internal/ui"
	"github.com/vietddude/jokecast/internal/widget"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the widget over HTTP",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := setup()
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	a := mustApp(cfg)

	state := ui.NewState()
	session := widget.NewSession(a.jokes, a.weather, rating.NewTracker(), state)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := ui.NewServer(ctx, session.ID, state, session, a.monitors, cfg.Server.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Widget server failed", "error", err)
		}
	}()
	go session.Start(ctx)

	slog.Info("Jokecast started", "port", cfg.Server.Port, "session", session.ID, "config", cfgPath)

	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}
}
