package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const historyKey = "newsradar:history"

// RedisStore 把整个标题序列以 JSON 存进单个 key，读写都是整体替换，
// 与文件后端保持同一套 load-mutate-save 语义
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (s *RedisStore) Load(ctx context.Context) ([]string, error) {
	raw, err := s.client.Get(ctx, historyKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("ledger: redis get: %v, starting with empty history", err)
		}
		return []string{}, nil
	}

	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil {
		log.Printf("ledger: parse redis history: %v, starting with empty history", err)
		return []string{}, nil
	}
	return titles, nil
}

func (s *RedisStore) Save(ctx context.Context, titles []string) error {
	raw, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.client.Set(ctx, historyKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
