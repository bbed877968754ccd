package scoring

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisKey = "tetris:scores"
	redisTimeout    = 3 * time.Second
)

// RedisStorage keeps scores in a Redis list.
type RedisStorage struct {
	client *redis.Client
	key    string
}

// NewRedisStorage connects to addr and verifies the connection.
func NewRedisStorage(ctx context.Context, addr, key string) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStorageFromClient(client, key), nil
}

// NewRedisStorageFromClient wraps an existing client.
func NewRedisStorageFromClient(client *redis.Client, key string) *RedisStorage {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStorage{client: client, key: key}
}

func (rs *RedisStorage) LoadAll() ([]int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	values, err := rs.client.LRange(ctx, rs.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}

	scores := make([]int, 0, len(values))
	for _, v := range values {
		if score, ok := parseScore(v); ok {
			scores = append(scores, score)
		}
	}
	return scores, nil
}

// SaveAll replaces the list atomically.
func (rs *RedisStorage) SaveAll(scores []int) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rs.key)
		if len(scores) == 0 {
			return nil
		}
		values := make([]interface{}, len(scores))
		for i, score := range scores {
			values[i] = strconv.Itoa(score)
		}
		pipe.RPush(ctx, rs.key, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}
	return nil
}

func (rs *RedisStorage) Close() error {
	return rs.client.Close()
}
