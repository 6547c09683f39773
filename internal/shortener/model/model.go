// Пакет model. Модели данных
package model

import "time"

// CodeLength - длина короткого кода
const CodeLength = 6

// Mapping - модель сокращенной ссылки.
// Ключ - ShortCode. CreatedAt задается один раз при создании (UTC),
// Clicks только растет.
type Mapping struct {
	ShortCode   string
	OriginalURL string
	CreatedAt   time.Time
	Clicks      int64
}

// Stats - статистика по короткой ссылке
type Stats struct {
	URL       string    `json:"url"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStats формирует статистику из модели ссылки
func NewStats(m Mapping) Stats {
	return Stats{
		URL:       m.OriginalURL,
		Clicks:    m.Clicks,
		CreatedAt: m.CreatedAt.UTC(),
	}
}
