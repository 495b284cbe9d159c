package responses

import (
	"github.com/gin-gonic/gin"
	"streamvibe.tv/read-gateway/app/domain/common"
)

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type GeneralResponse[T any] struct {
	Status string `json:"status"`
	Result T      `json:"result"`
}

const ResponseCodeOk = "000000"

// WriteError aborts the request, rendering appErr as the standard error body.
func WriteError(reqCtx *gin.Context, status int, appErr *common.Error) {
	reqCtx.AbortWithStatusJSON(status, ErrorResponse{
		Code:  appErr.Code,
		Error: appErr.Message,
	})
}
