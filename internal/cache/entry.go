package cache

import (
	"context"
	"fmt"

	"mdt/config"

	"github.com/go-redis/redis"
	"github.com/zeromicro/go-zero/core/logc"
)

type (
	entryCache struct {
		redis *redis.Client
	}

	InterEntryCache interface {
		Client() *redis.Client
		Session() InterSessionCache
	}
)

func NewEntryCache(cfg config.Redis) InterEntryCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Pass,
		DB:       cfg.DB,
	})

	if _, err := client.Ping().Result(); err != nil {
		logc.Errorf(context.Background(), "redis ping failed: %s", err.Error())
	}

	return &entryCache{
		redis: client,
	}
}

func (e entryCache) Client() *redis.Client {
	return e.redis
}

func (e entryCache) Session() InterSessionCache {
	return newSessionCacheInterface(e.redis)
}
