package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/kanban/internal/web"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the JSON API under /api and uploaded media under /media.

Requests act as the user in the X-User-ID header, or as user.id when the
header is absent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = globalSettings.Server.Addr
			}
			svc, err := services()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			globalLogger.Info("serving", zap.String("addr", addr), zap.String("mode", globalSettings.Mode))
			return web.NewServer(svc, globalSettings.User.ID, globalLogger).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr)")
	return cmd
}
