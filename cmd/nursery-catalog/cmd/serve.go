package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nursery-catalog/internal/catalog/handler"
	serverhttp "nursery-catalog/server/http"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tag, image and catalog endpoints over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr()
			}

			o, err := newOpener(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer o.Close()

			svc := handler.NewService(cfg, o.open, logger)
			srv := &http.Server{
				Addr:              addr,
				Handler:           serverhttp.NewRouter(cfg, svc, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info().Str("addr", addr).Msg("server starting")

			errc := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			// graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errc:
				return err
			case <-quit:
			}
			logger.Info().Msg("server shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			logger.Info().Msg("bye")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides host/port)")
	return cmd
}
