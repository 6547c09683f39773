package config

const DefaultLogLevel = "info"

type Config struct {
	LogLevel string
}
