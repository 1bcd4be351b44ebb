package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/five82/crate/internal/fixture"
	"github.com/five82/crate/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", ":8080", "listen address")
	dataPath := flag.String("data", "", "JSON array of albums to serve (optional, defaults to the built-in sample)")
	prefix := flag.String("prefix", "/api", "path prefix for the album routes")
	delay := flag.Duration("delay", 0, "hold every response for this long (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logging.NewWriter(os.Stderr, logging.ParseLevel(os.Getenv("CRATE_LOG_LEVEL")))
	defer func() { _ = logger.Sync() }()

	if err := serve(ctx, logger, *addr, *dataPath, *prefix, *delay); err != nil {
		fmt.Fprintf(os.Stderr, "crate-fixture: %v\n", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, logger *zap.Logger, addr, dataPath, prefix string, delay time.Duration) error {
	data := fixture.Sample()
	if dataPath != "" {
		var err error
		if data, err = fixture.LoadFile(dataPath); err != nil {
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           fixture.NewRouter(data, fixture.WithPrefix(prefix), fixture.WithDelay(delay), fixture.WithLogger(logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving fixture catalog", zap.String("addr", addr), zap.String("prefix", prefix), zap.Int("albums", data.Len()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
