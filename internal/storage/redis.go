package storage

import (
	"context"
	"errors"
	"github.com/redis/go-redis/v9"
	"time"
)

const defaultRedisTimeout = 3 * time.Second

type RedisOptions struct {
	Addrs    []string
	Password string
	Prefix   string
	Timeout  time.Duration
}

// RedisStore keeps each key as a plain redis string under Prefix.
type RedisStore struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// NewRedisStore connects to a standalone node or a cluster, depending on how
// many addresses are given, and pings it once.
func NewRedisStore(ctx context.Context, opt RedisOptions) (*RedisStore, error) {
	if len(opt.Addrs) == 0 {
		return nil, errors.New("redis addrs is empty")
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    opt.Addrs,
		Password: opt.Password,
	})
	return newRedisStore(ctx, client, opt)
}

func newRedisStore(ctx context.Context, client redis.UniversalClient, opt RedisOptions) (*RedisStore, error) {
	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{client: client, prefix: opt.Prefix, timeout: timeout}, nil
}

func (r *RedisStore) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisStore) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
