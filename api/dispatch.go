package api

import (
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type dispatchController struct{}

var DispatchController = new(dispatchController)

/*
Dispatch call API
/api/mdt/calls
*/
func (dispatchController dispatchController) API(gin *gin.RouterGroup) {
	a := gin.Group("calls")
	a.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
		middleware.AuditingLog(),
	)
	{
		a.GET("", dispatchController.List)
		a.GET(":id", dispatchController.Get)
		a.POST("", dispatchController.Create)
		a.PUT(":id/status", dispatchController.Advance)
		a.PUT(":id/patrol", dispatchController.Reassign)
	}
}

func (dispatchController dispatchController) List(ctx *gin.Context) {
	r := new(types.RequestCallQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DispatchService.List(r)
	})
}

func (dispatchController dispatchController) Get(ctx *gin.Context) {
	r := new(types.RequestCallQuery)
	BindUri(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DispatchService.Get(r)
	})
}

func (dispatchController dispatchController) Create(ctx *gin.Context) {
	r := new(types.RequestCallCreate)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DispatchService.Create(r)
	})
}

func (dispatchController dispatchController) Advance(ctx *gin.Context) {
	r := new(types.RequestCallAdvance)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DispatchService.Advance(r)
	})
}

func (dispatchController dispatchController) Reassign(ctx *gin.Context) {
	r := new(types.RequestCallReassign)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DispatchService.Reassign(r)
	})
}
