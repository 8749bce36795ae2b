package api

import (
	"net/http"

	"mdt/internal/ctx"
	"mdt/internal/global"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type systemController struct{}

var SystemController = new(systemController)

// API mounts the unauthenticated probes on the engine root.
func (systemController systemController) API(engine *gin.Engine) {
	engine.GET("/api/health", systemController.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (systemController systemController) Health(c *gin.Context) {
	status := http.StatusOK
	database := "ok"

	sqlDB, err := ctx.DO().DB.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		database = err.Error()
	}

	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"version":  global.Version,
		"database": database,
	})
}
