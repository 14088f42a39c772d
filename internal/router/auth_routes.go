package router

import (
	"github.com/hhhhhhjs/shopping-mall-program/internal/handler"
	"github.com/hhhhhhjs/shopping-mall-program/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, h *handler.AuthHandler) {
	authGroup := api.Group("/auth")

	loginLimiter := middleware.LoginRateLimit()

	authGroup.POST("/phoneLogin", loginLimiter, h.PhoneLogin)
	authGroup.GET("/logout", h.Logout)
}
