package api

import (
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type officerController struct{}

var OfficerController = new(officerController)

/*
Officer administration API
/api/mdt/officers
*/
func (officerController officerController) API(gin *gin.RouterGroup) {
	a := gin.Group("officers")
	a.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
		middleware.AuditingLog(),
	)
	{
		a.GET("", officerController.List)
		a.GET(":id", officerController.Get)
		a.POST("", officerController.Create)
		a.PUT(":id", officerController.Update)
		a.PUT(":id/grade", officerController.SetGrade)
		a.POST(":id/disable", officerController.Disable)
		a.POST(":id/enable", officerController.Enable)
		a.PUT(":id/password", officerController.ResetPassword)
	}
}

func (officerController officerController) List(ctx *gin.Context) {
	r := new(types.RequestOfficerQuery)
	BindQuery(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OfficerService.List(r)
	})
}

func (officerController officerController) Get(ctx *gin.Context) {
	r := new(types.RequestOfficerQuery)
	BindUri(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OfficerService.Get(r)
	})
}

func (officerController officerController) Create(ctx *gin.Context) {
	r := new(types.RequestOfficerCreate)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OfficerService.Create(r)
	})
}

func (officerController officerController) Update(ctx *gin.Context) {
	r := new(types.RequestOfficerUpdate)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OfficerService.Update(r)
	})
}

func (officerController officerController) SetGrade(ctx *gin.Context) {
	r := new(types.RequestOfficerSetGrade)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OfficerService.SetGrade(r)
	})
}

func (officerController officerController) Disable(ctx *gin.Context) {
	r := new(types.RequestOfficerState)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OfficerService.Disable(r)
	})
}

func (officerController officerController) Enable(ctx *gin.Context) {
	r := new(types.RequestOfficerState)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OfficerService.Enable(r)
	})
}

func (officerController officerController) ResetPassword(ctx *gin.Context) {
	r := new(types.RequestOfficerResetPassword)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.OfficerService.ResetPassword(r)
	})
}
