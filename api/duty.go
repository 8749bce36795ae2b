package api

import (
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type dutyController struct{}

var DutyController = new(dutyController)

/*
Duty API
/api/mdt/duty
*/
func (dutyController dutyController) API(gin *gin.RouterGroup) {
	a := gin.Group("duty")
	a.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
		middleware.AuditingLog(),
	)
	{
		a.POST("start", dutyController.Start)
		a.POST("end", dutyController.End)
		a.POST("force-end/:officerId", dutyController.ForceEnd)
		a.GET("status", dutyController.OwnStatus)
		a.GET("status/:officerId", dutyController.Status)
		a.GET("history", dutyController.OwnHistory)
		a.GET("history/:officerId", dutyController.History)
		a.GET("on-duty", dutyController.OnDuty)
	}
}

func (dutyController dutyController) Start(ctx *gin.Context) {
	r := &types.RequestDutyStart{OfficerId: actor(ctx)}

	Service(ctx, func() (interface{}, interface{}) {
		return services.DutyService.Start(r)
	})
}

func (dutyController dutyController) End(ctx *gin.Context) {
	r := &types.RequestDutyEnd{OfficerId: actor(ctx)}

	Service(ctx, func() (interface{}, interface{}) {
		return services.DutyService.End(r)
	})
}

func (dutyController dutyController) ForceEnd(ctx *gin.Context) {
	r := new(types.RequestDutyForceEnd)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DutyService.ForceEnd(r)
	})
}

func (dutyController dutyController) OwnStatus(ctx *gin.Context) {
	r := &types.RequestDutyStatus{ActorId: actor(ctx), OfficerId: actor(ctx)}

	Service(ctx, func() (interface{}, interface{}) {
		return services.DutyService.Status(r)
	})
}

func (dutyController dutyController) Status(ctx *gin.Context) {
	r := new(types.RequestDutyStatus)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DutyService.Status(r)
	})
}

func (dutyController dutyController) OwnHistory(ctx *gin.Context) {
	r := new(types.RequestDutyHistory)
	BindQuery(ctx, r)
	r.ActorId = actor(ctx)
	r.OfficerId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DutyService.History(r)
	})
}

func (dutyController dutyController) History(ctx *gin.Context) {
	r := new(types.RequestDutyHistory)
	BindQuery(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.DutyService.History(r)
	})
}

func (dutyController dutyController) OnDuty(ctx *gin.Context) {
	r := &types.RequestOnDuty{ActorId: actor(ctx)}

	Service(ctx, func() (interface{}, interface{}) {
		return services.DutyService.OnDuty(r)
	})
}
