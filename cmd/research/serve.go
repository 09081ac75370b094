package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"video-research/internal/transport/httpserver"
)

// newServeCmd creates the serve subcommand.
func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the research dashboard and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(opts)
			if err != nil {
				return err
			}
			defer app.close()

			if port == 0 {
				port = app.cfg.App.Port
			}

			server := httpserver.NewServer(
				httpserver.ServerConfig{
					Name:  app.cfg.App.Name,
					Port:  port,
					Debug: app.cfg.App.Debug,
				},
				app.research,
				app.client.Ready,
				app.validator,
				app.log.Logger,
			)

			// Graceful shutdown
			go func() {
				<-cmd.Context().Done()

				app.log.Info("shutdown signal received")

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.App.ShutdownWithContext(ctx); err != nil {
					app.log.Error("server shutdown error", zap.Error(err))
				}
			}()

			return server.Start(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default app.port)")

	return cmd
}
