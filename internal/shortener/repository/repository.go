// Пакет repository. Хранилище сокращенных ссылок
package repository

import (
	"context"
	"sync"

	"github.com/iurnickita/shortlink/internal/shortener/model"
	"github.com/iurnickita/shortlink/internal/shortener/repository/config"
)

// Интерфейс

// Repository - хранилище ссылок, ключ - короткий код.
// Отсутствие записи - нормальный результат (ok == false), а не ошибка.
// Ошибка зарезервирована за сбоями хранилища.
// Все методы безопасны для конкурентного вызова.
type Repository interface {
	Save(ctx context.Context, m model.Mapping) error                 // Save вставляет или перезаписывает запись
	SaveIfAbsent(ctx context.Context, m model.Mapping) (bool, error) // SaveIfAbsent вставляет запись, только если код свободен
	Find(ctx context.Context, code string) (model.Mapping, bool, error)
	IncrementClicks(ctx context.Context, code string) (bool, error) // IncrementClicks атомарно увеличивает счетчик на 1
	Len(ctx context.Context) (int, error)
	Ping() error
}

// NewStore создает хранилище по типу из конфигурации.
// Неизвестный тип - хранилище в переменной.
func NewStore(cfg config.Config) (Repository, error) {
	switch cfg.StoreType {
	case config.StoreTypeShard:
		return NewStoreShard(cfg)
	}
	return NewStoreVar(cfg)
}

// Реализация с хранением в переменной

// StoreVar - таблица под одним мьютексом
type StoreVar struct {
	mux       *sync.Mutex
	shortener map[string]model.Mapping
}

func NewStoreVar(cfg config.Config) (*StoreVar, error) {
	return &StoreVar{
		mux:       &sync.Mutex{},
		shortener: make(map[string]model.Mapping),
	}, nil
}

func (s *StoreVar) Save(ctx context.Context, m model.Mapping) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.shortener[m.ShortCode] = m
	return nil
}

func (s *StoreVar) SaveIfAbsent(ctx context.Context, m model.Mapping) (bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.shortener[m.ShortCode]; ok {
		return false, nil
	}
	s.shortener[m.ShortCode] = m
	return true, nil
}

// Find возвращает копию записи
func (s *StoreVar) Find(ctx context.Context, code string) (model.Mapping, bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	m, ok := s.shortener[code]
	return m, ok, nil
}

func (s *StoreVar) IncrementClicks(ctx context.Context, code string) (bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	m, ok := s.shortener[code]
	if !ok {
		return false, nil
	}
	m.Clicks++
	s.shortener[code] = m
	return true, nil
}

func (s *StoreVar) Len(ctx context.Context) (int, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	return len(s.shortener), nil
}

func (s *StoreVar) Ping() error {
	return nil
}

var _ Repository = (*StoreVar)(nil)
