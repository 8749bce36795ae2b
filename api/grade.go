package api

import (
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type gradeController struct{}

var GradeController = new(gradeController)

/*
Grade API
/api/mdt/grades
*/
func (gradeController gradeController) API(gin *gin.RouterGroup) {
	a := gin.Group("grades")
	a.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
		middleware.AuditingLog(),
	)
	{
		a.GET("", gradeController.List)
		a.GET("capabilities", gradeController.Capabilities)
		a.POST("", gradeController.Create)
		a.PUT(":id", gradeController.Update)
		a.PUT(":id/permissions", gradeController.SetPermissions)
		a.DELETE(":id", gradeController.Delete)
	}
}

func (gradeController gradeController) List(ctx *gin.Context) {
	r := new(types.RequestGradeQuery)

	Service(ctx, func() (interface{}, interface{}) {
		return services.GradeService.List(r)
	})
}

func (gradeController gradeController) Capabilities(ctx *gin.Context) {
	r := new(types.RequestGradeQuery)

	Service(ctx, func() (interface{}, interface{}) {
		return services.GradeService.Capabilities(r)
	})
}

func (gradeController gradeController) Create(ctx *gin.Context) {
	r := new(types.RequestGradeCreate)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.GradeService.Create(r)
	})
}

func (gradeController gradeController) Update(ctx *gin.Context) {
	r := new(types.RequestGradeUpdate)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.GradeService.Update(r)
	})
}

func (gradeController gradeController) SetPermissions(ctx *gin.Context) {
	r := new(types.RequestGradePermissions)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.GradeService.SetPermissions(r)
	})
}

func (gradeController gradeController) Delete(ctx *gin.Context) {
	r := new(types.RequestGradeDelete)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.GradeService.Delete(r)
	})
}
