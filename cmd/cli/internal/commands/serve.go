package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wolfeidau/inventario/internal/session"
	"github.com/wolfeidau/inventario/internal/web"
)

type ServeCmd struct {
	Listen      string   `help:"Address to listen on" default:"127.0.0.1:5173" env:"INVENTARIO_LISTEN"`
	CORSOrigins []string `name:"cors-origin" help:"Origins allowed to read the /api routes" env:"INVENTARIO_CORS_ORIGINS"`
}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	cancel := a.store.Subscribe(func(cur session.Session) {
		a.logger.Info().Str("role", cur.Role.String()).Bool("authenticated", cur.Authenticated()).Msg("session changed")
	})
	defer cancel()

	handler := web.NewServer(a.store, a.router, a.client, a.logger).Handler(s.CORSOrigins)
	srv := configureHTTPServer(s.Listen, handler)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", s.Listen).Str("home", a.router.Home()).Msg("serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	a.logger.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       5 * time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}
