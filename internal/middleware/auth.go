package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common/httpx"
	"github.com/hhhhhhjs/shopping-mall-program/internal/consts"
	"github.com/hhhhhhjs/shopping-mall-program/internal/db"
	"github.com/hhhhhhjs/shopping-mall-program/internal/model"
	"github.com/hhhhhhjs/shopping-mall-program/internal/service"
	"github.com/hhhhhhjs/shopping-mall-program/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	// stateCache 缓存用户状态与等级，减少每次请求的数据库查询
	// Key: userID (uint), Value: cachedState
	stateCache sync.Map
)

const stateCacheTTL = 1 * time.Minute

type cachedState struct {
	Status    int
	Level     int
	ExpiresAt time.Time
}

// ClearUserStateCache 清除指定用户的状态缓存，资料或状态变更后调用
func ClearUserStateCache(userID uint) {
	stateCache.Delete(userID)

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := service.RedisKey("auth", "user_state", strconv.FormatUint(uint64(userID), 10))
		_ = redisClient.Del(ctx, key).Err()
	}
}

// lookupUserState 读取用户状态与等级，优先 Redis，其次本地内存，最后落库
func lookupUserState(uid uint) (cachedState, error) {
	redisKey := service.RedisKey("auth", "user_state", strconv.FormatUint(uint64(uid), 10))

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		raw, err := redisClient.Get(ctx, redisKey).Result()
		if err == nil {
			var status, level int
			if _, scanErr := fmt.Sscanf(raw, "%d:%d", &status, &level); scanErr == nil {
				state := cachedState{Status: status, Level: level, ExpiresAt: time.Now().Add(stateCacheTTL)}
				stateCache.Store(uid, state)
				return state, nil
			}
		}
	}

	if val, ok := stateCache.Load(uid); ok {
		if state, typeOk := val.(cachedState); typeOk {
			if time.Now().Before(state.ExpiresAt) {
				return state, nil
			}
			stateCache.Delete(uid)
		}
	}

	var user model.User
	if err := db.DB.Select("status", "level").First(&user, uid).Error; err != nil {
		return cachedState{}, errors.New("用户不存在")
	}

	state := cachedState{Status: user.Status, Level: user.Level, ExpiresAt: time.Now().Add(stateCacheTTL)}
	stateCache.Store(uid, state)

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = redisClient.Set(ctx, redisKey, fmt.Sprintf("%d:%d", state.Status, state.Level), stateCacheTTL).Err()
	}

	return state, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// JWTAuth 要求携带有效的登录 token，写入 id/phone/openid 到上下文。
// 过期与伪造对客户端不作区分，一律按无效处理。
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			httpx.WriteUnauthorized(c, "需要登录后访问")
			c.Abort()
			return
		}

		claims, err := utils.ParseLoginToken(token)
		if err != nil {
			httpx.WriteUnauthorized(c, "登录状态无效或已过期")
			c.Abort()
			return
		}

		c.Set("id", claims.UserID)
		c.Set("phone", claims.Phone)
		c.Set("openid", claims.Openid)
		c.Next()
	}
}

// UserStatusCheck 拦截被禁用的账号，同时把用户等级放入上下文。
// 必须排在 JWTAuth 之后。
func UserStatusCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("id")
		if !exists {
			httpx.WriteUnauthorized(c, "未获取到用户信息")
			c.Abort()
			return
		}
		uid, ok := value.(uint)
		if !ok {
			httpx.WriteUnauthorized(c, "无效的用户ID类型")
			c.Abort()
			return
		}

		state, err := lookupUserState(uid)
		if err != nil {
			httpx.WriteUnauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		if state.Status != consts.UserStatusEnabled {
			httpx.WriteForbidden(c, "账号已被禁用")
			c.Abort()
			return
		}

		c.Set("level", state.Level)
		c.Next()
	}
}

// OptionalAuth 用于游客可访问的接口：带有效 token 时写入身份与等级，
// 否则按游客放行，绝不拦截。
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := utils.ParseLoginToken(token)
		if err != nil {
			c.Next()
			return
		}

		state, err := lookupUserState(claims.UserID)
		if err != nil || state.Status != consts.UserStatusEnabled {
			c.Next()
			return
		}

		c.Set("id", claims.UserID)
		c.Set("phone", claims.Phone)
		c.Set("openid", claims.Openid)
		c.Set("level", state.Level)
		c.Next()
	}
}
