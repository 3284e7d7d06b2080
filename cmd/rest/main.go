package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"university-assistant-be/internal/bootstrap"
	"university-assistant-be/internal/config"
	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/server"
	"university-assistant-be/internal/service"
	"university-assistant-be/internal/tracer"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Tracer
	shutdownTracer := tracer.InitTracer(tracer.Config{Enabled: cfg.Tracing.Enabled, Endpoint: cfg.Tracing.Endpoint}, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	srv := server.New(ctx, cfg, container)

	// 4. Background services and the HTTP server share one lifecycle
	g, gctx := errgroup.WithContext(ctx)

	// the hub outlives the group so closing sessions can always unregister
	go container.WebSocketHub.Run(gctx)

	g.Go(func() error {
		return container.ConsumerService.Consume(gctx)
	})

	if container.IndexEventService != nil {
		g.Go(func() error {
			if err := container.IndexEventService.Start(gctx); err != nil {
				sysLogger.Warn("Main", "Index events disabled", map[string]interface{}{"error": err.Error()})
			}
			return nil
		})
	}

	if cfg.Index.BuildOnStart {
		g.Go(func() error {
			buildIfMissing(gctx, container, cfg.Index.DataDir)
			return nil
		})
	}

	g.Go(func() error {
		return srv.Run()
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		sysLogger.Error("Main", "Server stopped with error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	sysLogger.Info("Main", "Server stopped", nil)
}

// buildIfMissing builds the index when none is published yet. A failure is
// logged and the server keeps running without an index.
func buildIfMissing(ctx context.Context, c *bootstrap.Container, rootDir string) {
	if _, err := c.Indexer.Status(ctx); err == nil {
		c.Logger.Info("Main", "Existing index found", nil)
		return
	} else if !errors.Is(err, contract.ErrIndexNotFound) {
		c.Logger.Warn("Main", "Could not read index status", map[string]interface{}{"error": err.Error()})
		return
	}

	c.Logger.Info("Main", "No index found, building", map[string]interface{}{"root": rootDir})
	if _, err := c.Indexer.BuildIndex(ctx, rootDir); err != nil {
		if errors.Is(err, service.ErrNoDocumentsFound) {
			c.Logger.Warn("Main", "No documents found; add .txt files under one folder per university and rebuild", map[string]interface{}{"root": rootDir})
			return
		}
		c.Logger.Error("Main", "Initial index build failed", map[string]interface{}{"error": err.Error()})
	}
}
