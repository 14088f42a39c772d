package handler

import (
	"github.com/hhhhhhjs/shopping-mall-program/internal/common/httpx"

	"github.com/gin-gonic/gin"
)

// PhoneLogin 小程序手机号一键登录
func (h *AuthHandler) PhoneLogin(c *gin.Context) {
	var req struct {
		Code      string `json:"code" binding:"required"`
		PhoneCode string `json:"phoneCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteValidationError(c, "缺少 code 或 phoneCode 参数")
		return
	}

	result, err := h.authService.PhoneLogin(c.Request.Context(), req.Code, req.PhoneCode)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}

	httpx.OK(c, result)
}

// Logout 登出。会话无服务端状态，客户端丢弃 token 即可，
// 这里保留端点以保证接口形状稳定。
func (h *AuthHandler) Logout(c *gin.Context) {
	httpx.OK(c, nil)
}
