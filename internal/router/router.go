package router

import (
	"github.com/hhhhhhjs/shopping-mall-program/internal/db"
	"github.com/hhhhhhjs/shopping-mall-program/internal/handler"
	"github.com/hhhhhhjs/shopping-mall-program/internal/repository"
	"github.com/hhhhhhjs/shopping-mall-program/internal/service"
	"github.com/hhhhhhjs/shopping-mall-program/internal/wechat"

	"github.com/gin-gonic/gin"
)

// InitRouter 组装依赖并注册全部 API 路由
func InitRouter(r *gin.Engine) {
	userRepo := repository.NewUserRepository(db.DB)
	goodsRepo := repository.NewGoodsRepository(db.DB)
	gateway := wechat.NewClient()

	authHandler := handler.NewAuthHandler(service.NewAuthService(gateway, userRepo))
	userHandler := handler.NewUserHandler(service.NewUserService(userRepo))
	goodsHandler := handler.NewGoodsHandler(service.NewGoodsService(goodsRepo))

	api := r.Group("/api")

	registerAuthRoutes(api, authHandler)
	registerUserRoutes(api, userHandler)
	registerGoodsRoutes(api, goodsHandler)
}
