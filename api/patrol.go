package api

import (
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type patrolController struct{}

var PatrolController = new(patrolController)

/*
Patrol API
/api/mdt/patrols
*/
func (patrolController patrolController) API(gin *gin.RouterGroup) {
	a := gin.Group("patrols")
	a.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
		middleware.AuditingLog(),
	)
	{
		a.GET("", patrolController.List)
		a.GET(":id", patrolController.Get)
		a.POST("", patrolController.Create)
		a.PUT(":id", patrolController.Update)
		a.DELETE(":id", patrolController.Delete)
		a.POST(":id/members", patrolController.Assign)
		a.DELETE(":id/members/:officerId", patrolController.Unassign)
		a.PUT(":id/leader", patrolController.SetLeader)
	}
}

func (patrolController patrolController) List(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		return services.PatrolService.List(nil)
	})
}

func (patrolController patrolController) Get(ctx *gin.Context) {
	r := new(types.RequestPatrolQuery)
	BindUri(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.PatrolService.Get(r)
	})
}

func (patrolController patrolController) Create(ctx *gin.Context) {
	r := new(types.RequestPatrolCreate)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.PatrolService.Create(r)
	})
}

func (patrolController patrolController) Update(ctx *gin.Context) {
	r := new(types.RequestPatrolUpdate)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.PatrolService.Update(r)
	})
}

func (patrolController patrolController) Delete(ctx *gin.Context) {
	r := new(types.RequestPatrolQuery)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.PatrolService.Delete(r)
	})
}

func (patrolController patrolController) Assign(ctx *gin.Context) {
	r := new(types.RequestPatrolMember)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.PatrolService.Assign(r)
	})
}

func (patrolController patrolController) Unassign(ctx *gin.Context) {
	r := new(types.RequestPatrolMember)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.PatrolService.Unassign(r)
	})
}

func (patrolController patrolController) SetLeader(ctx *gin.Context) {
	r := new(types.RequestPatrolMember)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.PatrolService.SetLeader(r)
	})
}
