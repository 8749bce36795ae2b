package initialization

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mdt/api"
	"mdt/internal/global"
	"mdt/internal/registry"
	"mdt/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// NewRouter builds the engine with every MDT route mounted.
func NewRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), metrics.GinMiddleware())

	api.SystemController.API(engine)

	group := engine.Group(registry.Prefix)
	api.AuthController.API(group)
	api.GradeController.API(group)
	api.OfficerController.API(group)
	api.DutyController.API(group)
	api.PatrolController.API(group)
	api.DispatchController.API(group)
	api.CentraleController.API(group)
	api.ComplaintController.API(group)
	api.AuditLogController.API(group)

	return engine
}

// InitRoute serves the API until SIGINT or SIGTERM.
func InitRoute() {
	mode := global.Config.Server.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	srv := &http.Server{
		Addr:    ":" + global.Config.Server.Port,
		Handler: NewRouter(),
	}

	go func() {
		logc.Infof(context.Background(), "mdt listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logc.Errorf(context.Background(), "server stopped: %s", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logc.Errorf(ctx, "shutdown: %s", err.Error())
	}
	logc.Info(context.Background(), "mdt stopped")
}
