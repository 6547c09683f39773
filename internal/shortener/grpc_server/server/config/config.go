package config

type Config struct {
	ServerAddr string // пусто - gRPC-сервер не запускается
}
