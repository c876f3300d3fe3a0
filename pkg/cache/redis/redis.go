package redis

import (
	"context"
	"time"

	r "gopkg.in/redis.v5"

	"github.com/openshift/sippy-chat/pkg/apis/cache"
)

const prefix = "_SIPPY_CHAT_"

type Cache struct {
	client *r.Client
}

func NewRedisCache(url string) (*Cache, error) {
	var opts *r.Options
	var err error

	if opts, err = r.ParseURL(url); err != nil {
		return nil, err
	}

	return &Cache{
		client: r.NewClient(opts),
	}, nil
}

// Get returns cache.ErrMiss for absent keys. redis.v5 has no context support, so ctx
// is only checked before the round trip.
func (c Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := c.client.Get(prefix + key).Bytes()
	if err == r.Nil {
		return nil, cache.ErrMiss
	}
	return b, err
}

func (c Cache) Set(ctx context.Context, key string, content []byte, duration time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.client.Set(prefix+key, content, duration).Err()
}

func (c Cache) Close() error {
	return c.client.Close()
}
