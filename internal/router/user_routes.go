package router

import (
	"github.com/hhhhhhjs/shopping-mall-program/internal/handler"
	"github.com/hhhhhhjs/shopping-mall-program/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, h *handler.UserHandler) {
	userGroup := api.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	userGroup.Use(middleware.UserStatusCheck())

	userGroup.GET("/info", h.GetSelfInfo)
	userGroup.PUT("/info", h.UpdateSelfInfo)
	userGroup.GET("/points", h.GetSelfPoints)
	userGroup.GET("/points/records", h.GetSelfPointsRecords)
	userGroup.POST("/points/exchange", h.ExchangePoints)
	userGroup.POST("/avatar", h.UpdateSelfAvatar)
}
