package middleware

import (
	"mdt/internal/ctx"
	"mdt/internal/global"
	"mdt/pkg/apperr"
	"mdt/pkg/response"
	"mdt/pkg/tools"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// Keys set on the gin context once a request is authenticated.
const (
	OfficerIdKey      = "OfficerId"
	UsernameKey       = "Username"
	TokenIdKey        = "TokenId"
	TokenExpiresAtKey = "TokenExpiresAt"
)

// Auth accepts a bearer token that is signed, unexpired and not revoked.
func Auth() gin.HandlerFunc {
	return func(context *gin.Context) {
		tokenStr := context.Request.Header.Get("Authorization")
		if tokenStr == "" {
			response.TokenFail(context)
			context.Abort()
			return
		}

		claims, err := tools.ParseToken(global.SignKey(), tokenStr)
		if err != nil {
			response.Fail(context, apperr.ErrUnauthenticated.WithMessage("invalid or expired token"))
			context.Abort()
			return
		}

		c := ctx.DO()
		if c.Redis != nil {
			revoked, err := c.Redis.Session().IsRevoked(claims.Id)
			if err != nil {
				// Redis down: the signature and expiry checks still hold.
				logc.Errorf(c.Ctx, "token revocation lookup: %s", err.Error())
			} else if revoked {
				response.Fail(context, apperr.ErrUnauthenticated.WithMessage("session has been logged out"))
				context.Abort()
				return
			}
		}

		context.Set(OfficerIdKey, claims.OfficerId)
		context.Set(UsernameKey, claims.Username)
		context.Set(TokenIdKey, claims.Id)
		context.Set(TokenExpiresAtKey, claims.ExpiresAt)
		context.Next()
	}
}
