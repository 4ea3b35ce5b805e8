package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"blogcms/app/config"
	"blogcms/app/logs"
	"blogcms/app/routes"
)

const shutdownTimeout = 10 * time.Second

// RunAppServer serves the blog on cfg.Addr until ctx is cancelled, then
// drains in-flight requests and closes the store.
func RunAppServer(ctx context.Context, cfg *config.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	router, err := routes.SetupRoutes(cfg, st.posts)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	logs.Info("starting blog service", map[string]interface{}{
		"addr":   ln.Addr().String(),
		"driver": cfg.DBDriver,
	})
	return serve(ctx, newServer(router), ln)
}

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logs.Info("shutting down blog service", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-errCh
	return nil
}
