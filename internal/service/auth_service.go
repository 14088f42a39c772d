package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common"
	"github.com/hhhhhhjs/shopping-mall-program/internal/config"
	"github.com/hhhhhhjs/shopping-mall-program/internal/consts"
	"github.com/hhhhhhjs/shopping-mall-program/internal/model"
	"github.com/hhhhhhjs/shopping-mall-program/internal/utils"

	"gorm.io/gorm"
)

// UserProfile 登录响应中的用户投影。
// session_key 和 openid 只存在于服务层与用户目录，绝不进入响应。
type UserProfile struct {
	ID          uint   `json:"id"`
	Phone       string `json:"phone"`
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
	Level       int    `json:"level"`
	Points      int    `json:"points"`
	CompanyName string `json:"companyName"`
}

// LoginResult 登录成功的产出
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"`
	User      UserProfile `json:"user"`
}

// PhoneLogin 手机号一键登录编排：
// 换取 openid → 换取手机号 → 解析身份 → 状态检查 → 签发 token。
// 每一步失败都在这里收拢成 ServiceError，由 HTTP 层统一映射。
func (s *AuthService) PhoneLogin(ctx context.Context, code string, phoneCode string) (*LoginResult, error) {
	if code == "" || phoneCode == "" {
		return nil, common.NewValidationError("缺少 code 或 phoneCode 参数")
	}

	// 1. code2session 换取 openid
	session, err := s.gateway.Code2Session(ctx, code)
	if err != nil {
		return nil, err
	}
	if !session.OK() {
		log.Printf("⚠️ code2session 失败: errcode=%d errmsg=%s", session.ErrCode, session.ErrMsg)
		return nil, common.NewGatewayError(session.ErrCode, "登录凭证校验失败")
	}

	// 2. 手机号授权 code 换取手机号
	phone, err := s.gateway.GetPhoneNumber(ctx, phoneCode)
	if err != nil {
		return nil, err
	}
	if !phone.OK() {
		log.Printf("⚠️ 获取手机号失败: errcode=%d errmsg=%s", phone.ErrCode, phone.ErrMsg)
		return nil, common.NewGatewayError(phone.ErrCode, "获取手机号失败")
	}

	// 3. 手机号为锚点查找或创建用户
	user, err := s.userStore.FindOrCreateByPhone(phone.PhoneInfo.PhoneNumber, session.Openid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewStorageError("用户目录读取失败")
		}
		log.Printf("❌ 用户目录不可用: %v", err)
		return nil, common.NewStorageError("用户目录不可用")
	}

	// 4. 禁用账号硬拒绝，使用独立错误码，绝不签发 token
	if user.Status != consts.UserStatusEnabled {
		return nil, common.NewForbiddenError("账号已被禁用")
	}

	// 5. 签发会话 token
	cfg := config.Get()
	ttl := time.Duration(cfg.JWT.ExpirationSecond) * time.Second
	token, err := utils.GenerateLoginToken(user.ID, user.Phone, user.Openid, ttl)
	if err != nil {
		return nil, common.NewInternalError("登录失败，请稍后重试")
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: cfg.JWT.ExpirationSecond,
		User:      projectUser(user),
	}, nil
}

func projectUser(user *model.User) UserProfile {
	return UserProfile{
		ID:          user.ID,
		Phone:       user.Phone,
		Nickname:    user.Nickname,
		Avatar:      user.Avatar,
		Level:       user.Level,
		Points:      user.Points,
		CompanyName: user.CompanyName,
	}
}
