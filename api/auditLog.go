package api

import (
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type auditLogController struct{}

var AuditLogController = new(auditLogController)

func (auditLogController auditLogController) API(gin *gin.RouterGroup) {
	a := gin.Group("audit-logs")
	a.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
	)
	{
		a.GET("", auditLogController.List)
	}
}

func (auditLogController auditLogController) List(ctx *gin.Context) {
	r := new(types.RequestAuditLogQuery)
	BindQuery(ctx, r)
	r.ViewerId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AuditLogService.List(r)
	})
}
