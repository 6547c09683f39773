package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iurnickita/shortlink/internal/shortener/config"
	grpcserver "github.com/iurnickita/shortlink/internal/shortener/grpc_server/server"
	"github.com/iurnickita/shortlink/internal/shortener/handlers"
	"github.com/iurnickita/shortlink/internal/shortener/logger"
	"github.com/iurnickita/shortlink/internal/shortener/repository"
	"github.com/iurnickita/shortlink/internal/shortener/service"
)

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	store, err := repository.NewStore(cfg.Repository)
	if err != nil {
		return err
	}

	shortenerService := service.NewShortener(store)

	zaplog.Info("shortener starting",
		zap.String("store_type", cfg.Repository.StoreType),
		zap.String("http_addr", cfg.Handlers.ServerAddr),
		zap.String("grpc_addr", cfg.GRPC.ServerAddr),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handlers.Serve(gctx, cfg.Handlers, shortenerService, zaplog)
	})
	if cfg.GRPC.ServerAddr != "" {
		g.Go(func() error {
			return grpcserver.Serve(gctx, cfg.GRPC, shortenerService, zaplog)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if n, err := store.Len(context.Background()); err == nil {
		zaplog.Info("shortener stopped", zap.Int("mappings", n))
	}
	return nil
}

// curl -v --json '{"url": "https://practicum.yandex.ru"}' http://localhost:8080/api/shorten
// curl -v http://localhost:8080/<short_code>
// curl -v http://localhost:8080/api/stats/<short_code>
// curl -v http://localhost:8080/api/health
