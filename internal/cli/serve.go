package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/ecotrack-backend/internal/app"
	"github.com/yungbote/ecotrack-backend/internal/http"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			a.Start()

			if port == "" {
				port = a.Cfg.Port
			}
			addr := ":" + port
			a.Log.Info("Server listening", "addr", addr)
			srv := &http.Server{Engine: a.Router}
			if err := srv.Run(ctx, addr); err != nil {
				return fmt.Errorf("server: %w", err)
			}
			a.Log.Info("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

