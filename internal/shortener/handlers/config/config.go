package config

import "time"

const (
	DefaultServerAddr      = "localhost:8080"
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	ServerAddr string
	BaseURL    string // пусто - адрес берется из запроса
}
