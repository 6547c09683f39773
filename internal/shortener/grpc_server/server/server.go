// Пакет grpcserver. Обработчики grpc
package grpcserver

import (
	"context"
	"errors"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	pb "github.com/iurnickita/shortlink/internal/shortener/grpc_server/proto"
	"github.com/iurnickita/shortlink/internal/shortener/grpc_server/server/config"
	"github.com/iurnickita/shortlink/internal/shortener/logger"
	"github.com/iurnickita/shortlink/internal/shortener/service"
)

// Server grpc-обработчик
type Server struct {
	config    config.Config
	shortener service.Service
	zaplog    *zap.Logger
}

// NewServer создает новый grpc-обработчик
func NewServer(config config.Config, shortener service.Service, zaplog *zap.Logger) *Server {
	return &Server{
		config:    config,
		shortener: shortener,
		zaplog:    zaplog,
	}
}

// Shorten создает короткую ссылку
func (s *Server) Shorten(ctx context.Context, in *pb.ShortenRequest) (*pb.ShortenResponse, error) {
	m, err := s.shortener.CreateShortenedURL(ctx, in.Url)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &pb.ShortenResponse{ShortCode: m.ShortCode}, nil
}

// Resolve возвращает исходный URL и учитывает переход
func (s *Server) Resolve(ctx context.Context, in *pb.ResolveRequest) (*pb.ResolveResponse, error) {
	url, err := s.shortener.GetAndTrackURL(ctx, in.ShortCode)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &pb.ResolveResponse{Url: url}, nil
}

// Stats возвращает статистику ссылки
func (s *Server) Stats(ctx context.Context, in *pb.StatsRequest) (*pb.StatsResponse, error) {
	m, err := s.shortener.GetURLStats(ctx, in.ShortCode)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &pb.StatsResponse{
		Url:       m.OriginalURL,
		Clicks:    m.Clicks,
		CreatedAt: m.CreatedAt.UTC(),
	}, nil
}

func (s *Server) toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	}
	s.zaplog.Error("gRPC call failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

// NewGRPCServer создает gRPC-сервер с сервисом сокращения и health
func NewGRPCServer(cfg config.Config, shortener service.Service, zaplog *zap.Logger) *grpc.Server {
	s := grpc.NewServer(grpc.UnaryInterceptor(logger.UnaryLogInterceptor(zaplog)))
	pb.RegisterShortenerServer(s, NewServer(cfg, shortener, zaplog))

	hs := health.NewServer()
	healthStatus := healthpb.HealthCheckResponse_SERVING
	if err := shortener.Ping(); err != nil {
		healthStatus = healthpb.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus("", healthStatus)
	hs.SetServingStatus(pb.ServiceName, healthStatus)
	healthpb.RegisterHealthServer(s, hs)

	return s
}

// Serve - запуск сервера, остановка по отмене контекста
func Serve(ctx context.Context, cfg config.Config, shortener service.Service, zaplog *zap.Logger) error {
	listen, err := net.Listen("tcp", cfg.ServerAddr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, listen, cfg, shortener, zaplog)
}

// ServeListener - запуск сервера на готовом listener
func ServeListener(ctx context.Context, listen net.Listener, cfg config.Config, shortener service.Service, zaplog *zap.Logger) error {
	s := NewGRPCServer(cfg, shortener, zaplog)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			s.GracefulStop()
		case <-stop:
		}
	}()

	zaplog.Info("gRPC server started", zap.String("addr", listen.Addr().String()))
	// остановка до начала Serve - не ошибка
	if err := s.Serve(listen); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	zaplog.Info("gRPC server stopped")
	return nil
}
