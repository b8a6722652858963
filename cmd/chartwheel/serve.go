package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/satindergrewal/chartwheel/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chart HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("self-signed") {
			cfg.Server.SelfSigned, _ = cmd.Flags().GetBool("self-signed")
		}

		r, err := newRenderer()
		if err != nil {
			return err
		}
		defs, err := loadDefs()
		if err != nil {
			return err
		}

		srv, err := server.New(server.Config{
			Log:      log,
			Renderer: r,
			Chart:    cfg.Chart,
			Server:   cfg.Server,
			Defs:     defs,
		})
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			log.Info().Str("signal", sig.String()).Msg("shutdown requested")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default from config)")
	serveCmd.Flags().Bool("self-signed", false, "serve HTTPS with an in-memory self-signed certificate")
}
