package api

import (
	"time"

	"mdt/internal/global"
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type complaintController struct{}

var ComplaintController = new(complaintController)

// IntakeLimiter throttles the public complaint form per client IP. It is
// built on first use of API so the configured rate applies.
var IntakeLimiter *middleware.RateLimiter

/*
Complaint API
/api/mdt/public/complaints   citizen intake, no session
/api/mdt/complaints          internal affairs
*/
func (complaintController complaintController) API(gin *gin.RouterGroup) {
	if IntakeLimiter == nil {
		IntakeLimiter = middleware.NewRateLimiter(global.Config.Intake.RequestsPerMinute, time.Minute)
	}

	a := gin.Group("public/complaints")
	{
		a.POST("", IntakeLimiter.Middleware(), middleware.AuditingLog(), complaintController.Submit)
		a.GET(":trackingNumber", complaintController.Track)
	}

	b := gin.Group("complaints")
	b.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
		middleware.AuditingLog(),
	)
	{
		b.GET("", complaintController.List)
		b.GET(":id", complaintController.Get)
		b.PUT(":id/handler", complaintController.Assign)
		b.PUT(":id/status", complaintController.Transition)
	}
}

func (complaintController complaintController) Submit(ctx *gin.Context) {
	r := new(types.RequestComplaintSubmit)
	BindJson(ctx, r)
	r.SubmitIP = ctx.ClientIP()

	Service(ctx, func() (interface{}, interface{}) {
		return services.ComplaintService.Submit(r)
	})
}

func (complaintController complaintController) Track(ctx *gin.Context) {
	r := new(types.RequestComplaintTrack)
	BindUri(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ComplaintService.Track(r)
	})
}

func (complaintController complaintController) List(ctx *gin.Context) {
	r := new(types.RequestComplaintQuery)
	BindQuery(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ComplaintService.List(r)
	})
}

func (complaintController complaintController) Get(ctx *gin.Context) {
	r := new(types.RequestComplaintQuery)
	BindUri(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ComplaintService.Get(r)
	})
}

func (complaintController complaintController) Assign(ctx *gin.Context) {
	r := new(types.RequestComplaintAssign)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ComplaintService.Assign(r)
	})
}

func (complaintController complaintController) Transition(ctx *gin.Context) {
	r := new(types.RequestComplaintTransition)
	BindJson(ctx, r)
	r.ActorId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.ComplaintService.Transition(r)
	})
}
