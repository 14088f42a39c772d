package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// LoginClaims 登录会话凭证载荷
type LoginClaims struct {
	UserID uint   `json:"user_id"`
	Phone  string `json:"phone"`
	Openid string `json:"openid"`
	Type   string `json:"type"` // "login"
	jwt.RegisteredClaims
}

// TokenState 校验结果的内部分类；对外只暴露有效/无效
type TokenState int

const (
	TokenValid TokenState = iota
	TokenExpired
	TokenMalformed
)

func getSecret() []byte {
	return []byte(config.Get().JWT.Secret)
}

func GenerateLoginToken(userID uint, phone string, openid string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := LoginClaims{
		UserID: userID,
		Phone:  phone,
		Openid: openid,
		Type:   "login",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			Issuer:    "shopping-mall-program",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

func ParseLoginToken(tokenString string) (*LoginClaims, error) {
	claims, state, err := ParseLoginTokenState(tokenString)
	if state != TokenValid {
		return nil, err
	}
	return claims, nil
}

// ParseLoginTokenState 解析并校验 token，保留过期/格式错误的区分。
// 调用方对客户端仍只暴露统一的"无效"结论。
func ParseLoginTokenState(tokenString string) (*LoginClaims, TokenState, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LoginClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getSecret(), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, TokenExpired, err
		}
		return nil, TokenMalformed, err
	}

	if claims, ok := token.Claims.(*LoginClaims); ok && token.Valid {
		if claims.Type != "login" {
			return nil, TokenMalformed, errors.New("invalid token type")
		}
		return claims, TokenValid, nil
	}

	return nil, TokenMalformed, errors.New("invalid token")
}

// DecodeLoginToken 只解码不校验签名，仅用于诊断输出，绝不能用于信任判断。
func DecodeLoginToken(tokenString string) (*LoginClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &LoginClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*LoginClaims)
	if !ok {
		return nil, errors.New("invalid token payload")
	}
	return claims, nil
}
