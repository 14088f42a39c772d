package router

import (
	"github.com/hhhhhhjs/shopping-mall-program/internal/handler"
	"github.com/hhhhhhjs/shopping-mall-program/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerGoodsRoutes(api *gin.RouterGroup, h *handler.GoodsHandler) {
	// 商品接口游客可访问，携带 token 时按用户等级展示价格
	goodsGroup := api.Group("/goods")
	goodsGroup.Use(middleware.OptionalAuth())

	goodsGroup.GET("/categories", h.GetCategories)
	goodsGroup.GET("/list", h.GetGoodsList)
	goodsGroup.GET("/detail/:id", h.GetGoodsDetail)
}
