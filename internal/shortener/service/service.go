// Пакет service. Сервис
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	netutils "github.com/iurnickita/shortlink/internal/common/net_utils"
	"github.com/iurnickita/shortlink/internal/common/rand"
	"github.com/iurnickita/shortlink/internal/shortener/model"
	"github.com/iurnickita/shortlink/internal/shortener/repository"
)

// Service - интерфейс сервиса
type Service interface {
	CreateShortenedURL(ctx context.Context, originalURL string) (model.Mapping, error) // CreateShortenedURL создает короткую ссылку
	GetAndTrackURL(ctx context.Context, code string) (string, error)                   // GetAndTrackURL возвращает URL и учитывает переход
	GetURLStats(ctx context.Context, code string) (model.Mapping, error)               // GetURLStats возвращает статистику без побочных эффектов
	Ping() error                                                                       // Ping
}

// Shortener - Сервис сокращения URL
type Shortener struct {
	store    repository.Repository
	generate func() string
	now      func() time.Time
}

func NewShortener(store repository.Repository) *Shortener {
	return &Shortener{
		store:    store,
		generate: generateCode,
		now:      time.Now,
	}
}

// Ошибки пакета
var (
	ErrInvalidURL = errors.New("invalid url provided")
	ErrNotFound   = errors.New("short code not found")
	ErrRepoFailed = errors.New("repo failed")
)

func newErrNotFound(code string) error {
	return fmt.Errorf("%w: code = %s", ErrNotFound, code)
}

func newErrRepoFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrRepoFailed, err)
}

// generateCode - случайный код фиксированной длины
func generateCode() string {
	return rand.String(model.CodeLength)
}

// CreateShortenedURL проверяет URL и подбирает свободный код.
// Число попыток не ограничено: при 62^6 кодах ожидается одна итерация,
// но при почти заполненном пространстве кодов цикл может не завершиться.
// Выход из цикла возможен только по отмене контекста.
func (service *Shortener) CreateShortenedURL(ctx context.Context, originalURL string) (model.Mapping, error) {
	if !netutils.IsAbsoluteURL(originalURL) {
		return model.Mapping{}, ErrInvalidURL
	}

	for {
		if err := ctx.Err(); err != nil {
			return model.Mapping{}, err
		}

		code := service.generate()
		_, found, err := service.store.Find(ctx, code)
		if err != nil {
			return model.Mapping{}, newErrRepoFailed(err)
		}
		if found {
			continue
		}

		m := model.Mapping{
			ShortCode:   code,
			OriginalURL: originalURL,
			CreatedAt:   service.now().UTC(),
		}
		// код мог занять конкурентный запрос между Find и записью
		saved, err := service.store.SaveIfAbsent(ctx, m)
		if err != nil {
			return model.Mapping{}, newErrRepoFailed(err)
		}
		if saved {
			return m, nil
		}
	}
}

func (service *Shortener) GetAndTrackURL(ctx context.Context, code string) (string, error) {
	m, found, err := service.store.Find(ctx, code)
	if err != nil {
		return "", newErrRepoFailed(err)
	}
	if !found {
		return "", newErrNotFound(code)
	}

	ok, err := service.store.IncrementClicks(ctx, code)
	if err != nil {
		return "", newErrRepoFailed(err)
	}
	if !ok {
		return "", newErrNotFound(code)
	}

	return m.OriginalURL, nil
}

func (service *Shortener) GetURLStats(ctx context.Context, code string) (model.Mapping, error) {
	m, found, err := service.store.Find(ctx, code)
	if err != nil {
		return model.Mapping{}, newErrRepoFailed(err)
	}
	if !found {
		return model.Mapping{}, newErrNotFound(code)
	}
	return m, nil
}

func (service *Shortener) Ping() error {
	return service.store.Ping()
}

var _ Service = (*Shortener)(nil)
