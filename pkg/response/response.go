package response

import (
	"net/http"

	"mdt/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logc"
)

// ResponseData is the envelope of every API answer.
type ResponseData struct {
	Code  int         `json:"code"`
	Kind  string      `json:"kind,omitempty"`
	Error string      `json:"error,omitempty"`
	Msg   string      `json:"msg"`
	Data  interface{} `json:"data"`
}

func Success(ctx *gin.Context, data interface{}, msg string) {
	ctx.JSON(http.StatusOK, ResponseData{
		Code: http.StatusOK,
		Msg:  msg,
		Data: data,
	})
}

// Fail answers with the status and codes derived from err.
func Fail(ctx *gin.Context, err error) {
	e := apperr.From(err)
	status := apperr.HTTPStatus(e)
	if e.Kind == apperr.KindInternal {
		logc.Errorf(ctx.Request.Context(), "%s %s: %s", ctx.Request.Method, ctx.Request.URL.Path, e.Error())
	}
	ctx.JSON(status, ResponseData{
		Code:  status,
		Kind:  string(e.Kind),
		Error: e.Code,
		Msg:   e.Message,
	})
}

func TokenFail(ctx *gin.Context) {
	Fail(ctx, apperr.ErrUnauthenticated)
}

func PermissionFail(ctx *gin.Context) {
	Fail(ctx, apperr.ErrPermissionDenied)
}
