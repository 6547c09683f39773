package config

const (
	StoreTypeVar      string = "0"
	StoreTypeShard    string = "1"
	DefaultShardCount int    = 16
)

type Config struct {
	StoreType  string
	ShardCount int
}
