// Пакет config. Конфигурация приложения
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	grpcConfig "github.com/iurnickita/shortlink/internal/shortener/grpc_server/server/config"
	handlersConfig "github.com/iurnickita/shortlink/internal/shortener/handlers/config"
	loggerConfig "github.com/iurnickita/shortlink/internal/shortener/logger/config"
	repositoryConfig "github.com/iurnickita/shortlink/internal/shortener/repository/config"
)

type Config struct {
	Handlers   handlersConfig.Config
	GRPC       grpcConfig.Config
	Repository repositoryConfig.Config
	Logger     loggerConfig.Config
}

// GetConfig читает конфигурацию из флагов командной строки и окружения
func GetConfig() (Config, error) {
	// .env не обязателен и не перекрывает переменные окружения
	_ = godotenv.Load()

	return Load(os.Args[1:])
}

// Load разбирает флаги и накладывает поверх них переменные окружения
func Load(args []string) (Config, error) {
	cfg := Config{}

	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fs.StringVar(&cfg.Handlers.ServerAddr, "a", handlersConfig.DefaultServerAddr, "address of HTTP server")
	fs.StringVar(&cfg.Handlers.BaseURL, "b", "", "base URL of short links")
	fs.StringVar(&cfg.GRPC.ServerAddr, "g", "", "address of gRPC server, empty to disable")
	fs.StringVar(&cfg.Logger.LogLevel, "l", loggerConfig.DefaultLogLevel, "log level")
	fs.StringVar(&cfg.Repository.StoreType, "s", repositoryConfig.StoreTypeVar, "store type: 0 - single table, 1 - sharded")
	fs.IntVar(&cfg.Repository.ShardCount, "n", repositoryConfig.DefaultShardCount, "shard count for sharded store")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if envsrv := os.Getenv("SERVER_ADDRESS"); envsrv != "" {
		cfg.Handlers.ServerAddr = envsrv
	}
	if envbase := os.Getenv("BASE_URL"); envbase != "" {
		cfg.Handlers.BaseURL = envbase
	}
	if envgrpc := os.Getenv("GRPC_ADDRESS"); envgrpc != "" {
		cfg.GRPC.ServerAddr = envgrpc
	}
	if envlog := os.Getenv("LOG_LEVEL"); envlog != "" {
		cfg.Logger.LogLevel = envlog
	}
	if envstore := os.Getenv("STORE_TYPE"); envstore != "" {
		cfg.Repository.StoreType = envstore
	}
	if envshards := os.Getenv("STORE_SHARDS"); envshards != "" {
		n, err := strconv.Atoi(envshards)
		if err != nil {
			return cfg, fmt.Errorf("invalid STORE_SHARDS: %w", err)
		}
		cfg.Repository.ShardCount = n
	}

	cfg.Handlers.ServerAddr = strings.TrimPrefix(cfg.Handlers.ServerAddr, "http://")
	cfg.Handlers.BaseURL = normalizeBaseURL(cfg.Handlers.BaseURL)

	switch cfg.Repository.StoreType {
	case repositoryConfig.StoreTypeVar, repositoryConfig.StoreTypeShard:
	default:
		return cfg, fmt.Errorf("unknown store type %q", cfg.Repository.StoreType)
	}
	if cfg.Repository.ShardCount <= 0 {
		return cfg, fmt.Errorf("shard count must be positive, got %d", cfg.Repository.ShardCount)
	}

	return cfg, nil
}

// normalizeBaseURL - без завершающего слеша, схема по умолчанию http
func normalizeBaseURL(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return base
}
