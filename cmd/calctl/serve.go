package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Asurkatha/calctl/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only HTTP view of the calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, logger, err := newEngine()
			if err != nil {
				return err
			}

			addr := cfg.Server.Listen
			if listen != "" {
				addr = listen
			}
			srv := server.New(addr, engine, &logger)

			errChan := make(chan error, 1)
			go func() {
				errChan <- srv.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errChan:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
			case sig := <-quit:
				logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Stop(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (host:port)")

	return cmd
}
