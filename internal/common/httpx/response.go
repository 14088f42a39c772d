package httpx

import (
	"net/http"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common"

	"github.com/gin-gonic/gin"
)

// 统一响应信封：{code, message, data}，code 为 0 表示成功。
// 失败时 data 恒为 null，业务码与 HTTP 状态码同时给出。

type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// OK writes a success envelope with code 0.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Code: 0, Message: "ok", Data: data})
}

// WriteServiceError maps a service-layer error onto the response envelope.
// 平台透传错误保留平台 errcode 作为业务码，其它错误用 HTTP 状态码作为业务码。
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := common.AsServiceError(err); ok {
		status := serviceErrorStatus(serviceErr.Code)
		code := status
		if serviceErr.Code == common.ErrorCodeGateway && serviceErr.PlatformCode != 0 {
			code = serviceErr.PlatformCode
		}
		c.JSON(status, Envelope{Code: code, Message: serviceErr.Message, Data: nil})
		return
	}
	c.JSON(http.StatusInternalServerError, Envelope{Code: http.StatusInternalServerError, Message: fallbackMessage, Data: nil})
}

// WriteValidationError writes a bad-request envelope for malformed input.
func WriteValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Code: http.StatusBadRequest, Message: message, Data: nil})
}

// WriteUnauthorized writes a 401 envelope; used by the auth middleware.
func WriteUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Envelope{Code: http.StatusUnauthorized, Message: message, Data: nil})
}

// WriteForbidden writes a 403 envelope; used for disabled accounts.
func WriteForbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Envelope{Code: http.StatusForbidden, Message: message, Data: nil})
}

func serviceErrorStatus(code common.ErrorCode) int {
	switch code {
	case common.ErrorCodeValidation:
		return http.StatusBadRequest
	case common.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrorCodeForbidden:
		return http.StatusForbidden
	case common.ErrorCodeNotFound:
		return http.StatusNotFound
	case common.ErrorCodeConflict:
		return http.StatusConflict
	case common.ErrorCodeGateway, common.ErrorCodeStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
