package api

import (
	"mdt/internal/middleware"
	"mdt/pkg/apperr"
	"mdt/pkg/response"

	"github.com/gin-gonic/gin"
)

// identified is implemented by records that can name the audit target.
type identified interface {
	GetID() string
}

// Service runs fn unless binding already failed, then writes its result.
func Service(ctx *gin.Context, fn func() (interface{}, interface{})) {
	if ctx.IsAborted() {
		return
	}

	data, err := fn()
	if err != nil {
		e, ok := err.(error)
		if !ok {
			e = apperr.ErrInvalidInput.WithMessage("%v", err)
		}
		response.Fail(ctx, e)
		return
	}

	if rec, ok := data.(identified); ok && ctx.Param("id") == "" {
		ctx.Set(middleware.AuditTargetKey, rec.GetID())
	}
	response.Success(ctx, data, "success")
}

// BindJson decodes the body, then the uri parameters. An empty body leaves
// the request zero-valued for the service to validate.
func BindJson(ctx *gin.Context, req interface{}) {
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(req); err != nil {
			fail(ctx, err)
			return
		}
	}
	BindUri(ctx, req)
}

func BindQuery(ctx *gin.Context, req interface{}) {
	if err := ctx.ShouldBindQuery(req); err != nil {
		fail(ctx, err)
		return
	}
	BindUri(ctx, req)
}

func BindUri(ctx *gin.Context, req interface{}) {
	if ctx.IsAborted() || len(ctx.Params) == 0 {
		return
	}
	if err := ctx.ShouldBindUri(req); err != nil {
		fail(ctx, err)
	}
}

func fail(ctx *gin.Context, err error) {
	response.Fail(ctx, apperr.Invalid("%s", err.Error()))
	ctx.Abort()
}

// actor is the authenticated officer of the request.
func actor(ctx *gin.Context) string {
	return ctx.GetString(middleware.OfficerIdKey)
}
