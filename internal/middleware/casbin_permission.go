package middleware

import (
	"errors"

	"mdt/internal/ctx"
	"mdt/internal/services"
	"mdt/pkg/apperr"
	"mdt/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// GradeIdKey holds the authorization grade of the caller.
const GradeIdKey = "GradeId"

// CasbinPermission checks the caller's real grade against the route policy.
// Superuser grades pass every route.
func CasbinPermission() gin.HandlerFunc {
	return func(context *gin.Context) {
		officerId := context.GetString(OfficerIdKey)
		if officerId == "" {
			response.TokenFail(context)
			context.Abort()
			return
		}

		c := ctx.DO()
		officer, err := c.DB.Officer().Get(officerId)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				response.TokenFail(context)
			} else {
				response.Fail(context, err)
			}
			context.Abort()
			return
		}
		if !officer.IsActive() {
			response.Fail(context, apperr.ErrOfficerInactive)
			context.Abort()
			return
		}

		grade, err := c.DB.Grade().Get(officer.GradeId)
		if err != nil {
			response.Fail(context, err)
			context.Abort()
			return
		}
		context.Set(GradeIdKey, grade.ID)

		if grade.IsSuperuser() {
			context.Next()
			return
		}

		path := context.Request.URL.Path
		method := context.Request.Method
		ok, err := services.CasbinPermissionService.CheckPermission(grade.ID, path, method)
		if err != nil {
			logc.Errorf(c.Ctx, "casbin check %s %s for %s: %s", method, path, grade.ID, err.Error())
			response.Fail(context, err)
			context.Abort()
			return
		}
		if !ok {
			logc.Infof(c.Ctx, "grade %s may not %s %s", grade.Name, method, path)
			response.PermissionFail(context)
			context.Abort()
			return
		}

		context.Next()
	}
}
