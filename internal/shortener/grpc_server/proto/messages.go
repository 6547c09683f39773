package proto

import "time"

type ShortenRequest struct {
	Url string `json:"url"`
}

type ShortenResponse struct {
	ShortCode string `json:"short_code"`
}

type ResolveRequest struct {
	ShortCode string `json:"short_code"`
}

type ResolveResponse struct {
	Url string `json:"url"`
}

type StatsRequest struct {
	ShortCode string `json:"short_code"`
}

type StatsResponse struct {
	Url       string    `json:"url"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"created_at"`
}
