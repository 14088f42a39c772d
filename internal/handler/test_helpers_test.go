package handler

import (
	"context"
	"testing"

	"github.com/hhhhhhjs/shopping-mall-program/internal/repository"
	"github.com/hhhhhhjs/shopping-mall-program/internal/service"
	"github.com/hhhhhhjs/shopping-mall-program/internal/testutils"
	"github.com/hhhhhhjs/shopping-mall-program/internal/wechat"

	"gorm.io/gorm"
)

var (
	testAuthHandler  *AuthHandler
	testUserHandler  *UserHandler
	testGoodsHandler *GoodsHandler
)

// fakeGateway 固定返回值的网关桩
type fakeGateway struct {
	session *wechat.SessionResult
	phone   *wechat.PhoneResult
}

func (g *fakeGateway) Code2Session(ctx context.Context, code string) (*wechat.SessionResult, error) {
	return g.session, nil
}

func (g *fakeGateway) GetPhoneNumber(ctx context.Context, phoneCode string) (*wechat.PhoneResult, error) {
	return g.phone, nil
}

func okGateway(openid string, phone string) *fakeGateway {
	return &fakeGateway{
		session: &wechat.SessionResult{Openid: openid, SessionKey: "sk"},
		phone:   &wechat.PhoneResult{PhoneInfo: &wechat.PhoneInfo{PhoneNumber: phone, PurePhoneNumber: phone, CountryCode: "86"}},
	}
}

func setupTestHandlers(t *testing.T, gateway service.IdentityGateway) *gorm.DB {
	testutils.SetupConfig()
	gdb := testutils.SetupDB(t)

	userRepo := repository.NewUserRepository(gdb)
	goodsRepo := repository.NewGoodsRepository(gdb)

	testAuthHandler = NewAuthHandler(service.NewAuthService(gateway, userRepo))
	testUserHandler = NewUserHandler(service.NewUserService(userRepo))
	testGoodsHandler = NewGoodsHandler(service.NewGoodsService(goodsRepo))
	return gdb
}
