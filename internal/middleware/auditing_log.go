package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"mdt/internal/ctx"
	"mdt/internal/models"
	"mdt/pkg/tools"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// AuditTargetKey lets a handler name the record it touched when the route
// carries no :id.
const AuditTargetKey = "AuditTarget"

const maxAuditBody = 4096

// AuditingLog records every mutating request after it has been handled.
func AuditingLog() gin.HandlerFunc {
	return func(context *gin.Context) {
		if context.Request.Method == http.MethodGet {
			context.Next()
			return
		}

		var body []byte
		if context.Request.Body != nil {
			readBody, err := io.ReadAll(context.Request.Body)
			if err != nil {
				logc.Error(ctx.DO().Ctx, err)
			}
			body = readBody
			context.Request.Body = io.NopCloser(bytes.NewBuffer(readBody))
		}

		context.Next()

		target := context.Param("id")
		if t := context.GetString(AuditTargetKey); t != "" {
			target = t
		}
		if target == "" {
			target = context.Param("officerId")
		}

		auditLog := models.AuditLog{
			ID:         "Trace" + tools.RandId(),
			ActorId:    context.GetString(OfficerIdKey),
			ActorName:  context.GetString(UsernameKey),
			Action:     actionName(context.Request.Method, context.FullPath()),
			Target:     target,
			Method:     context.Request.Method,
			Path:       context.Request.URL.Path,
			StatusCode: context.Writer.Status(),
			IPAddress:  context.ClientIP(),
			Body:       redact(body),
			CreatedAt:  ctx.DO().Now().Unix(),
		}

		c := ctx.DO()
		if err := c.DB.AuditLog().Create(auditLog); err != nil {
			logc.Errorf(c.Ctx, "write audit log: %s", err.Error())
		}
	}
}

// actionName turns "POST /api/mdt/patrols/:id/members" into
// "create patrols/:id/members".
func actionName(method, pattern string) string {
	pattern = strings.TrimPrefix(strings.TrimPrefix(pattern, "/api/mdt"), "/")

	var verb string
	switch method {
	case http.MethodPost:
		verb = "create"
	case http.MethodPut, http.MethodPatch:
		verb = "update"
	case http.MethodDelete:
		verb = "delete"
	default:
		verb = strings.ToLower(method)
	}
	return verb + " " + pattern
}

// redact blanks password-like fields of a JSON body and caps its length.
func redact(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var fields map[string]interface{}
	if err := sonic.Unmarshal(body, &fields); err != nil {
		return truncate(string(body))
	}
	for k := range fields {
		if strings.Contains(strings.ToLower(k), "password") {
			fields[k] = "***"
		}
	}

	out, err := sonic.MarshalString(fields)
	if err != nil {
		return ""
	}
	return truncate(out)
}

func truncate(s string) string {
	if len(s) > maxAuditBody {
		return s[:maxAuditBody]
	}
	return s
}
