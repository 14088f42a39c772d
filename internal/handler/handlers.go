package handler

import "github.com/hhhhhhjs/shopping-mall-program/internal/service"

type AuthHandler struct {
	authService *service.AuthService
}

type UserHandler struct {
	userService *service.UserService
}

type GoodsHandler struct {
	goodsService *service.GoodsService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func NewGoodsHandler(goodsService *service.GoodsService) *GoodsHandler {
	return &GoodsHandler{goodsService: goodsService}
}
