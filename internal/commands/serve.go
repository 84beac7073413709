package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/watspent/watspent/internal/api"
	"github.com/watspent/watspent/internal/session"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the import, report and export API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = e.cfg.Server.Addr
			}

			e.session.OnImport(func(ev session.ImportEvent) {
				e.log.WithFields(logrus.Fields{
					"source":     ev.Source,
					"count":      ev.Count,
					"generation": ev.Generation,
				}).Info("Serve.Store.replaced")
			})

			h := &api.Handler{Session: e.session, Log: e.log}
			app := h.NewApp()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				e.log.WithField("addr", addr).Info("Serve.Listen")
				errCh <- app.Listen(addr)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("listening on %s: %w", addr, err)
				}
				return nil
			case <-ctx.Done():
			}

			e.log.Info("Serve.Shutdown")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")

	return cmd
}
