package assignment

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the document when none is configured.
const DefaultRedisKey = "homeworkpal:assignments"

// RedisBackend keeps the document as a single string value.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend creates a backend on client under key.
func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

// DialRedis parses a redis:// URL and pings the server.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (b *RedisBackend) Load(ctx context.Context) (*Document, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

func (b *RedisBackend) Save(ctx context.Context, doc *Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.key, data, 0).Err()
}

func (b *RedisBackend) ReadOnly() bool { return false }
