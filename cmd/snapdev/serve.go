package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snapdev-task/internal/handlers"
	"snapdev-task/internal/loop"
	"snapdev-task/internal/realtime"
	"snapdev-task/internal/routes"
	"snapdev-task/internal/sound"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveAddr string

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket shell",
		Long: `Start the HTTP shell used by the web view.

Examples:
  snapdev serve
  snapdev serve --addr 127.0.0.1:8080`,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if cfg.LogLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	player := sound.New(cfg.Sound.Enabled, cfg.Sound.Command, os.Stdout)
	a.timer.OnPhaseComplete(player.Play)

	var srv *handlers.Server
	l := loop.New(time.Second, func() { srv.Tick() })
	srv = handlers.New(l, a.board, a.timer, realtime.NewHub())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loopDone := make(chan error, 1)
	go func() { loopDone <- l.Run(ctx) }()

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: routes.SetupRoutes(srv),
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Server starting on %s", cfg.Server.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		stop()
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("server shutdown")
		}
	}
	<-loopDone

	// the loop has stopped, so the board is ours again
	if saveErr := a.board.SaveAll(); saveErr != nil {
		log.WithError(saveErr).Error("could not save tasks on exit")
	} else {
		log.Info("tasks saved")
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
