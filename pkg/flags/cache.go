package flags

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/openshift/sippy-chat/pkg/apis/cache"
	"github.com/openshift/sippy-chat/pkg/cache/memory"
	"github.com/openshift/sippy-chat/pkg/cache/redis"
)

// CacheFlags holds caching configuration for the suggestion fallback cache.
type CacheFlags struct {
	RedisURL string
}

func NewCacheFlags() *CacheFlags {
	return &CacheFlags{}
}

func (f *CacheFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.RedisURL,
		"redis-url",
		os.Getenv("REDIS_URL"),
		"Redis URL for caching suggestions between runs; an in-process cache is used when empty")
}

func (f *CacheFlags) GetCacheClient() (cache.Cache, error) {
	if f.RedisURL != "" {
		return redis.NewRedisCache(f.RedisURL)
	}

	return memory.NewCache(), nil
}
