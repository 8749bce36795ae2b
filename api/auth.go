package api

import (
	"mdt/internal/middleware"
	"mdt/internal/services"
	"mdt/internal/types"

	"github.com/gin-gonic/gin"
)

type authController struct{}

var AuthController = new(authController)

/*
Session API
/api/mdt/auth
*/
func (authController authController) API(gin *gin.RouterGroup) {
	a := gin.Group("auth")
	a.Use(
		middleware.AuditingLog(),
	)
	{
		a.POST("login", authController.Login)
	}

	b := gin.Group("auth")
	b.Use(
		middleware.Auth(),
		middleware.CasbinPermission(),
		middleware.AuditingLog(),
	)
	{
		b.POST("logout", authController.Logout)
		b.GET("me", authController.Profile)
		b.POST("password", authController.ChangePassword)
	}
}

func (authController authController) Login(ctx *gin.Context) {
	r := new(types.RequestLogin)
	BindJson(ctx, r)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AuthService.Login(r)
	})
}

func (authController authController) Logout(ctx *gin.Context) {
	r := &types.RequestLogout{
		OfficerId: actor(ctx),
		TokenId:   ctx.GetString(middleware.TokenIdKey),
		ExpiresAt: ctx.GetInt64(middleware.TokenExpiresAtKey),
	}

	Service(ctx, func() (interface{}, interface{}) {
		return services.AuthService.Logout(r)
	})
}

func (authController authController) Profile(ctx *gin.Context) {
	r := &types.RequestProfile{OfficerId: actor(ctx)}

	Service(ctx, func() (interface{}, interface{}) {
		return services.AuthService.Profile(r)
	})
}

func (authController authController) ChangePassword(ctx *gin.Context) {
	r := new(types.RequestChangePassword)
	BindJson(ctx, r)
	r.OfficerId = actor(ctx)

	Service(ctx, func() (interface{}, interface{}) {
		return services.AuthService.ChangePassword(r)
	})
}
