package repository

import (
	"context"

	"github.com/cespare/xxhash/v2"

	"github.com/iurnickita/shortlink/internal/shortener/model"
	"github.com/iurnickita/shortlink/internal/shortener/repository/config"
)

// Реализация с разбиением на сегменты

// StoreShard - набор независимых таблиц, сегмент выбирается по xxhash кода.
// Все операции над одним кодом идут через мьютекс одного сегмента.
type StoreShard struct {
	shards []*StoreVar
}

func NewStoreShard(cfg config.Config) (*StoreShard, error) {
	n := cfg.ShardCount
	if n <= 0 {
		n = config.DefaultShardCount
	}

	shards := make([]*StoreVar, n)
	for i := range shards {
		shard, err := NewStoreVar(cfg)
		if err != nil {
			return nil, err
		}
		shards[i] = shard
	}
	return &StoreShard{shards: shards}, nil
}

func (s *StoreShard) shard(code string) *StoreVar {
	return s.shards[xxhash.Sum64String(code)%uint64(len(s.shards))]
}

func (s *StoreShard) Save(ctx context.Context, m model.Mapping) error {
	return s.shard(m.ShortCode).Save(ctx, m)
}

func (s *StoreShard) SaveIfAbsent(ctx context.Context, m model.Mapping) (bool, error) {
	return s.shard(m.ShortCode).SaveIfAbsent(ctx, m)
}

func (s *StoreShard) Find(ctx context.Context, code string) (model.Mapping, bool, error) {
	return s.shard(code).Find(ctx, code)
}

func (s *StoreShard) IncrementClicks(ctx context.Context, code string) (bool, error) {
	return s.shard(code).IncrementClicks(ctx, code)
}

// Len - сумма по сегментам, без общего снимка
func (s *StoreShard) Len(ctx context.Context) (int, error) {
	total := 0
	for _, shard := range s.shards {
		n, err := shard.Len(ctx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (s *StoreShard) Ping() error {
	return nil
}

var _ Repository = (*StoreShard)(nil)
