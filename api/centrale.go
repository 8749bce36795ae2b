package api

import (
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type centraleController struct{}

var CentraleController = new(centraleController)

/*
Centrale API
/api/mdt/centrale
*/
func (centraleController centraleController) API(gin *gin.RouterGroup) {
	a := gin.Group("centrale")
	a.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
		middleware.AuditingLog(),
	)
	{
		a.GET("overview", centraleController.Overview)

		a.GET("notes", centraleController.ListNotes)
		a.POST("notes", centraleController.CreateNote)
		a.PUT("notes/:id/pin", centraleController.PinNote)
		a.DELETE("notes/:id", centraleController.DeleteNote)

		a.GET("operator", centraleController.CurrentOperator)
		a.PUT("operator", centraleController.AssignOperator)
		a.DELETE("operator", centraleController.ReleaseOperator)
	}
}

func (centraleController centraleController) Overview(ctx *gin.Context) {
	r := &types.RequestCentraleOverview{ActorId: actor(ctx)}

	Service(ctx, func() (interface{}, interface{}) {
		return services.CentraleService.Overview(r)
	})
}

func (centraleController centraleController) ListNotes(ctx *gin.Context) {
	r := new(types.RequestNoteQuery)
	BindQuery(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.CentraleService.ListNotes(r)
	})
}

func (centraleController centraleController) CreateNote(ctx *gin.Context) {
	r := new(types.RequestNoteCreate)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.CentraleService.CreateNote(r)
	})
}

func (centraleController centraleController) PinNote(ctx *gin.Context) {
	r := new(types.RequestNotePin)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.CentraleService.PinNote(r)
	})
}

func (centraleController centraleController) DeleteNote(ctx *gin.Context) {
	r := new(types.RequestNoteQuery)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.CentraleService.DeleteNote(r)
	})
}

func (centraleController centraleController) CurrentOperator(ctx *gin.Context) {
	Service(ctx, func() (interface{}, interface{}) {
		return services.CentraleService.CurrentOperator(nil)
	})
}

func (centraleController centraleController) AssignOperator(ctx *gin.Context) {
	r := new(types.RequestOperatorAssign)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.CentraleService.AssignOperator(r)
	})
}

func (centraleController centraleController) ReleaseOperator(ctx *gin.Context) {
	r := &types.RequestOperatorRelease{ActorId: actor(ctx)}

	Service(ctx, func() (interface{}, interface{}) {
		return services.CentraleService.ReleaseOperator(r)
	})
}
