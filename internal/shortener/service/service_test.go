package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iurnickita/shortlink/internal/shortener/model"
	"github.com/iurnickita/shortlink/internal/shortener/repository"
	repositoryConfig "github.com/iurnickita/shortlink/internal/shortener/repository/config"
)

func newTestShortener(t *testing.T) (*Shortener, repository.Repository) {
	t.Helper()

	store, err := repository.NewStore(repositoryConfig.Config{StoreType: repositoryConfig.StoreTypeVar})
	require.NoError(t, err)
	return NewShortener(store), store
}

// sequence - генератор, выдающий коды по порядку
func sequence(codes ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		code := codes[i%len(codes)]
		i++
		return code
	}
}

func TestService_NewShortener(t *testing.T) {
	shortenerService, _ := newTestShortener(t)
	require.NotNil(t, shortenerService)
	require.NoError(t, shortenerService.Ping())
}

func TestService_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "test #1", url: "https://www.google.com/search?q=python"},
		{name: "test #2", url: "https://practicum.yandex.ru/"},
		{name: "test #3", url: "http://localhost:8080/a/b?c=d&e=f#frag"},
	}

	shortenerService, _ := newTestShortener(t)
	ctx := context.Background()

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := shortenerService.CreateShortenedURL(ctx, test.url)
			require.NoError(t, err)
			require.Len(t, m.ShortCode, model.CodeLength)
			require.Equal(t, test.url, m.OriginalURL)
			require.Zero(t, m.Clicks)
			require.Equal(t, time.UTC, m.CreatedAt.Location())

			url, err := shortenerService.GetAndTrackURL(ctx, m.ShortCode)
			require.NoError(t, err)
			require.Equal(t, test.url, url)

			stats, err := shortenerService.GetURLStats(ctx, m.ShortCode)
			require.NoError(t, err)
			require.EqualValues(t, 1, stats.Clicks)
			require.Equal(t, test.url, stats.OriginalURL)
			require.Equal(t, m.CreatedAt, stats.CreatedAt)
		})
	}
}

func TestService_CreatedAtUTC(t *testing.T) {
	shortenerService, _ := newTestShortener(t)
	moscow := time.FixedZone("MSK", 3*60*60)
	fixed := time.Date(2025, 6, 1, 15, 0, 0, 0, moscow)
	shortenerService.now = func() time.Time { return fixed }

	m, err := shortenerService.CreateShortenedURL(context.Background(), "https://ya.ru/")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), m.CreatedAt)
}

func TestService_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "no scheme", url: "not-a-valid-url"},
		{name: "no host", url: "https://"},
		{name: "empty", url: ""},
		{name: "bare host", url: "ya.ru"},
	}

	shortenerService, store := newTestShortener(t)
	ctx := context.Background()

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := shortenerService.CreateShortenedURL(ctx, test.url)
			require.ErrorIs(t, err, ErrInvalidURL)
		})
	}

	n, err := store.Len(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestService_NotFound(t *testing.T) {
	shortenerService, store := newTestShortener(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := shortenerService.GetURLStats(ctx, "nonexi")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = shortenerService.GetAndTrackURL(ctx, "nonexi")
		require.ErrorIs(t, err, ErrNotFound)
	}

	n, err := store.Len(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestService_CollisionRetry(t *testing.T) {
	shortenerService, store := newTestShortener(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.Mapping{ShortCode: "taken1", OriginalURL: "https://ya.ru/"}))
	require.NoError(t, store.Save(ctx, model.Mapping{ShortCode: "taken2", OriginalURL: "https://ya.ru/"}))
	shortenerService.generate = sequence("taken1", "taken2", "taken1", "free01")

	m, err := shortenerService.CreateShortenedURL(ctx, "https://go.dev/")
	require.NoError(t, err)
	require.Equal(t, "free01", m.ShortCode)

	// исходные записи не перезаписаны
	old, err := shortenerService.GetURLStats(ctx, "taken1")
	require.NoError(t, err)
	require.Equal(t, "https://ya.ru/", old.OriginalURL)
}

func TestService_CollisionCanceled(t *testing.T) {
	shortenerService, store := newTestShortener(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, store.Save(ctx, model.Mapping{ShortCode: "taken1", OriginalURL: "https://ya.ru/"}))
	shortenerService.generate = sequence("taken1")

	_, err := shortenerService.CreateShortenedURL(ctx, "https://go.dev/")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestService_Uniqueness(t *testing.T) {
	const (
		workers = 16
		perWork = 50
	)
	shortenerService, store := newTestShortener(t)
	// каждый код выдается дважды, вторая выдача - всегда коллизия
	pool := make([]string, 0, 2*workers*perWork)
	for i := 0; i < workers*perWork; i++ {
		pool = append(pool, codeFor(i), codeFor(i))
	}
	shortenerService.generate = sequence(pool...)
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = make(map[string]string)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWork; i++ {
				m, err := shortenerService.CreateShortenedURL(ctx, "https://ya.ru/")
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				if _, dup := codes[m.ShortCode]; dup {
					t.Errorf("duplicate code %s", m.ShortCode)
				}
				codes[m.ShortCode] = m.OriginalURL
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, codes, workers*perWork)
	n, err := store.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, workers*perWork, n)
}

// codeFor - детерминированный 6-символьный код
func codeFor(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	b := []byte("aaaaaa")
	for pos := len(b) - 1; pos >= 0 && i > 0; pos-- {
		b[pos] = alphabet[i%len(alphabet)]
		i /= len(alphabet)
	}
	return string(b)
}

func TestService_ConcurrentClicks(t *testing.T) {
	const n = 500
	shortenerService, _ := newTestShortener(t)
	ctx := context.Background()

	m, err := shortenerService.CreateShortenedURL(ctx, "https://github.com/features/copilot")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := shortenerService.GetAndTrackURL(ctx, m.ShortCode); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	stats, err := shortenerService.GetURLStats(ctx, m.ShortCode)
	require.NoError(t, err)
	require.EqualValues(t, n, stats.Clicks)
}

func TestService_StatsScenario(t *testing.T) {
	shortenerService, _ := newTestShortener(t)
	ctx := context.Background()
	url := "https://github.com/features/copilot"

	m, err := shortenerService.CreateShortenedURL(ctx, url)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := shortenerService.GetAndTrackURL(ctx, m.ShortCode)
		require.NoError(t, err)
		require.Equal(t, url, got)
	}

	stats, err := shortenerService.GetURLStats(ctx, m.ShortCode)
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.Clicks)
	require.Equal(t, url, stats.OriginalURL)
	require.False(t, stats.CreatedAt.IsZero())
}

// brokenStore - хранилище, которое всегда падает
type brokenStore struct {
	repository.Repository
}

var errBroken = errors.New("connection refused")

func (brokenStore) Find(ctx context.Context, code string) (model.Mapping, bool, error) {
	return model.Mapping{}, false, errBroken
}

func (brokenStore) Ping() error {
	return errBroken
}

func TestService_RepoFailed(t *testing.T) {
	shortenerService := NewShortener(brokenStore{})
	ctx := context.Background()

	_, err := shortenerService.CreateShortenedURL(ctx, "https://ya.ru/")
	require.ErrorIs(t, err, ErrRepoFailed)
	require.ErrorIs(t, err, errBroken)

	_, err = shortenerService.GetAndTrackURL(ctx, "abcdef")
	require.ErrorIs(t, err, ErrRepoFailed)
	require.NotErrorIs(t, err, ErrNotFound)

	_, err = shortenerService.GetURLStats(ctx, "abcdef")
	require.ErrorIs(t, err, ErrRepoFailed)

	require.ErrorIs(t, shortenerService.Ping(), errBroken)
}

func BenchmarkService_CreateShortenedURL(b *testing.B) {
	store, _ := repository.NewStore(repositoryConfig.Config{StoreType: repositoryConfig.StoreTypeShard})
	shortenerService := NewShortener(store)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = shortenerService.CreateShortenedURL(ctx, "https://practicum.yandex.ru/")
	}
}
