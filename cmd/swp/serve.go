package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/swp-projector/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.settings.Addr
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return a.serve(ctx, cmd, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default $SWP_ADDR or :8080)")
	return cmd
}

// serve runs the web UI until ctx is cancelled, then shuts down gracefully
func (a *app) serve(ctx context.Context, cmd *cobra.Command, addr string) error {
	srv := web.NewServer(web.Options{
		Addr:     addr,
		Currency: a.settings.Currency,
		Logger:   a.logger,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	fmt.Fprintf(cmd.OutOrStdout(), "  SWP calculator listening on http://%s\n", displayAddr(addr))
	a.logger.Info("server started", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("http server: %w", err)
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
