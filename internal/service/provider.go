package service

import (
	"context"

	repo "github.com/hhhhhhjs/shopping-mall-program/internal/repository"
	"github.com/hhhhhhjs/shopping-mall-program/internal/wechat"
)

// IdentityGateway 身份提供方网关需要的远程操作；*wechat.Client 是生产实现。
type IdentityGateway interface {
	Code2Session(ctx context.Context, code string) (*wechat.SessionResult, error)
	GetPhoneNumber(ctx context.Context, phoneCode string) (*wechat.PhoneResult, error)
}

type AuthService struct {
	gateway   IdentityGateway
	userStore repo.UserStore
}

type UserService struct {
	userStore repo.UserStore
}

type GoodsService struct {
	goodsStore repo.GoodsStore
}

func NewAuthService(gateway IdentityGateway, userStore repo.UserStore) *AuthService {
	return &AuthService{gateway: gateway, userStore: userStore}
}

func NewUserService(userStore repo.UserStore) *UserService {
	return &UserService{userStore: userStore}
}

func NewGoodsService(goodsStore repo.GoodsStore) *GoodsService {
	return &GoodsService{goodsStore: goodsStore}
}
