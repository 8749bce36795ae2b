package ctx

import (
	"context"
	"time"

	"mdt/internal/cache"
	"mdt/internal/repo"
)

type Context struct {
	DB    repo.InterEntryRepo
	Redis cache.InterEntryCache
	Ctx   context.Context
	// Clock is overridden in tests.
	Clock func() time.Time
}

var (
	DB    repo.InterEntryRepo
	Redis cache.InterEntryCache
	Ctx   context.Context
	c     *Context
)

func NewContext(ctx context.Context, db repo.InterEntryRepo, redis cache.InterEntryCache) *Context {
	DB = db
	Redis = redis
	Ctx = ctx
	c = &Context{
		DB:    db,
		Redis: redis,
		Ctx:   ctx,
		Clock: time.Now,
	}
	return c
}

// DO returns the process-wide context built by NewContext.
func DO() *Context {
	return c
}

func (c *Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}
