package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/linkvault/internal/logger"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Serve runs handler on addr until ctx is cancelled, SIGINT/SIGTERM arrives or
// a background task fails. Background tasks share the server's lifetime.
func Serve(ctx context.Context, addr string, handler http.Handler, log logger.Logger, background ...func(context.Context) error) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return serve(ctx, ln, handler, log, background...)
}

func serve(ctx context.Context, ln net.Listener, handler http.Handler, log logger.Logger, background ...func(context.Context) error) error {
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	for _, task := range background {
		g.Go(func() error {
			return task(gCtx)
		})
	}

	g.Go(func() error {
		log.Info("HTTP server listening", logger.String("address", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			log.Info("received shutdown signal", logger.String("signal", sig.String()))
		case <-gCtx.Done():
			log.Info("context cancelled, initiating shutdown")
		}
		cancel()

		shutdownCtx, stop := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", logger.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("HTTP server stopped")
	return nil
}
