// Пакет handlers. Обработчики HTTP
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	ghandlers "github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/iurnickita/shortlink/internal/shortener/handlers/config"
	"github.com/iurnickita/shortlink/internal/shortener/logger"
	"github.com/iurnickita/shortlink/internal/shortener/model"
	"github.com/iurnickita/shortlink/internal/shortener/service"
)

// Serve запускает HTTP-сервер и останавливает его по отмене контекста
func Serve(ctx context.Context, cfg config.Config, shortener Shortener, zaplog *zap.Logger) error {
	h := newHandlers(cfg, shortener, zaplog)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      newRouter(h),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		zaplog.Info("HTTP server started", zap.String("addr", cfg.ServerAddr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	zaplog.Info("HTTP server stopped")
	return nil
}

func newRouter(h *handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logger.RequestLogMdlw(h.zaplog))
	r.Use(middleware.Recoverer)

	r.NotFound(h.NotFound)

	r.Get("/api/health", h.Health)
	r.Post("/api/shorten", h.SetShortener)
	r.Get("/api/stats/{code}", h.GetStats)
	r.Get("/{code}", h.GetShortener)

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		ghandlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(r)
}

// Shortener - сервис, вызываемый обработчиками
type Shortener interface {
	CreateShortenedURL(ctx context.Context, originalURL string) (model.Mapping, error)
	GetAndTrackURL(ctx context.Context, code string) (string, error)
	GetURLStats(ctx context.Context, code string) (model.Mapping, error)
	Ping() error
}

type handlers struct {
	shortener Shortener
	baseURL   string
	zaplog    *zap.Logger
}

func newHandlers(cfg config.Config, shortener Shortener, zaplog *zap.Logger) *handlers {
	return &handlers{
		shortener: shortener,
		baseURL:   cfg.BaseURL,
		zaplog:    zaplog,
	}
}

type shortenRequest struct {
	URL string `json:"url"`
}

type shortenResponse struct {
	ShortCode string `json:"short_code"`
	ShortURL  string `json:"short_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Тексты ошибок для клиента
const (
	msgURLRequired = "URL is required"
	msgInvalidURL  = "Invalid URL provided."
	msgNotFound    = "Not Found"
	msgInternal    = "Internal Server Error"
)

func (h *handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.shortener.Ping(); err != nil {
		h.zaplog.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *handlers) SetShortener(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, msgURLRequired)
		return
	}

	m, err := h.shortener.CreateShortenedURL(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidURL) {
			writeError(w, http.StatusBadRequest, msgInvalidURL)
			return
		}
		h.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, shortenResponse{
		ShortCode: m.ShortCode,
		ShortURL:  h.shortURL(r, m.ShortCode),
	})
}

func (h *handlers) GetShortener(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	url, err := h.shortener.GetAndTrackURL(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		h.internalError(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (h *handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	m, err := h.shortener.GetURLStats(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		h.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewStats(m))
}

func (h *handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound)
}

func (h *handlers) internalError(w http.ResponseWriter, err error) {
	h.zaplog.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// shortURL - полная короткая ссылка
func (h *handlers) shortURL(r *http.Request, code string) string {
	if h.baseURL != "" {
		return h.baseURL + "/" + code
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/" + code
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
