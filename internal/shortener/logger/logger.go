// Пакет logger. Журнал
package logger

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/iurnickita/shortlink/internal/shortener/logger/config"
)

// NewZapLog создает объект zap-логгера
func NewZapLog(cfg config.Config) (*zap.Logger, error) {
	// преобразуем текстовый уровень логирования в zap.AtomicLevel
	lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	// создаём новую конфигурацию логгера
	zapcfg := zap.NewProductionConfig()
	// устанавливаем уровень
	zapcfg.Level = lvl
	// создаём логгер на основе конфигурации
	zl, err := zapcfg.Build()
	if err != nil {
		return nil, err
	}
	return zl, nil
}

// RequestLogMdlw middleware-логгер для входящих HTTP-запросов.
func RequestLogMdlw(zaplog *zap.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.GetReqID(r.Context())

			zaplog.Info("got incoming HTTP request",
				zap.String("request_id", reqID),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
			)

			wl := NewResponseWriterLogger(w)

			handlerStart := time.Now()
			h.ServeHTTP(wl, r)
			handlerDuration := time.Since(handlerStart)

			zaplog.Info("send HTTP response",
				zap.String("request_id", reqID),
				zap.Int("code", wl.statusCode),
				zap.Int("length", wl.length),
				zap.Duration("duration", handlerDuration),
			)
		})
	}
}

// responseWriterLogger - оборачивает http.ResponseWriter дополнительным слоем логгирования
type responseWriterLogger struct {
	http.ResponseWriter
	statusCode int
	length     int
}

// NewResponseWriterLogger оборачивает http.ResponseWriter дополнительным слоем логгирования
func NewResponseWriterLogger(w http.ResponseWriter) *responseWriterLogger {
	return &responseWriterLogger{w, http.StatusOK, 0}
}

// WriteHeader переопределение
func (wl *responseWriterLogger) WriteHeader(code int) {
	wl.statusCode = code
	wl.ResponseWriter.WriteHeader(code)
}

// Write переопределение
func (wl *responseWriterLogger) Write(b []byte) (n int, err error) {
	n, err = wl.ResponseWriter.Write(b)
	wl.length += n
	return
}

// UnaryLogInterceptor логирует вызовы gRPC
func UnaryLogInterceptor(zaplog *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		zaplog.Info("gRPC call",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
