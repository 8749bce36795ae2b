package initialization

import (
	"context"
	"fmt"
	"time"

	"mdt/api"
	"mdt/config"
	"mdt/internal/cache"
	"mdt/internal/ctx"
	"mdt/internal/global"
	"mdt/internal/repo"
	"mdt/internal/services"
	"mdt/pkg/client"
	"mdt/pkg/watchdog"

	"github.com/zeromicro/go-zero/core/logc"
)

func InitBasic() *ctx.Context {
	global.Config = config.InitConfig()

	db, err := client.NewDBClient(client.DBConfig{
		Driver:  global.Config.Database.Driver,
		Host:    global.Config.Database.Host,
		Port:    global.Config.Database.Port,
		User:    global.Config.Database.User,
		Pass:    global.Config.Database.Pass,
		DBName:  global.Config.Database.DBName,
		Timeout: global.Config.Database.Timeout,
	})
	if err != nil {
		panic(fmt.Sprintf("database: %s", err.Error()))
	}

	dbRepo := repo.NewRepoEntry(db)
	rCache := cache.NewEntryCache(global.Config.Redis)
	ctx := ctx.NewContext(context.Background(), dbRepo, rCache)

	services.NewServices(ctx)

	if err := SeedGrades(ctx); err != nil {
		panic(err)
	}
	if err := SeedAdmin(ctx); err != nil {
		panic(err)
	}

	if err := InitCasbin(ctx); err != nil {
		logc.Errorf(ctx.Ctx, "casbin init failed: %s", err.Error())
		panic(err)
	}

	go watchdogScheduler(ctx)

	return ctx
}

// watchdogScheduler runs the housekeeping jobs for the lifetime of the
// process.
func watchdogScheduler(ctx *ctx.Context) {
	scheduler := watchdog.NewScheduler(ctx)

	err := scheduler.AddJob("intake-limiter-cleanup", "0 */10 * * * *", func() error {
		if api.IntakeLimiter != nil {
			api.IntakeLimiter.Cleanup(time.Hour)
		}
		return nil
	})
	if err != nil {
		logc.Errorf(ctx.Ctx, "[Watchdog] %s", err.Error())
	}

	if err := scheduler.Start(); err != nil {
		logc.Errorf(ctx.Ctx, "[Watchdog] failed to start: %s", err.Error())
		return
	}
	logc.Info(ctx.Ctx, "[Watchdog] running")
}
