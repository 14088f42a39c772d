package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/model"
	"github.com/hhhhhhjs/shopping-mall-program/internal/testutils"
	"github.com/hhhhhhjs/shopping-mall-program/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func seedAuthUser(t *testing.T, gdb *gorm.DB, status int, level int) (*model.User, string) {
	t.Helper()
	user := model.User{Phone: "13899990000", Openid: "o_mw", Nickname: "用户0000", Level: level}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}
	if err := gdb.Model(&user).UpdateColumn("status", status).Error; err != nil {
		t.Fatalf("设置用户状态失败: %v", err)
	}
	ClearUserStateCache(user.ID)

	token, err := utils.GenerateLoginToken(user.ID, user.Phone, user.Openid, time.Hour)
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}
	return &user, token
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWTAuth(), UserStatusCheck(), func(c *gin.Context) {
		level, _ := c.Get("level")
		c.JSON(200, gin.H{"id": c.MustGet("id"), "level": level})
	})
	return r
}

// 测试内容：验证有效 token 放行并注入身份与等级。
func TestJWTAuth_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig()
	gdb := testutils.SetupDB(t)
	_, token := seedAuthUser(t, gdb, 1, 3)

	r := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, `"level":3`) {
		t.Fatalf("期望注入等级 3: %s", body)
	}
}

// 测试内容：验证缺失、格式错误与伪造 token 均返回 401。
func TestJWTAuth_InvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig()
	testutils.SetupDB(t)

	r := protectedRouter()

	cases := map[string]string{
		"缺失":   "",
		"格式错误": "Token abc",
		"伪造":   "Bearer not.a.jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: 期望 401，实际为 %d", name, w.Code)
		}
	}
}

// 测试内容：验证过期 token 返回 401。
func TestJWTAuth_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig()
	gdb := testutils.SetupDB(t)
	user, _ := seedAuthUser(t, gdb, 1, 1)

	expired, err := utils.GenerateLoginToken(user.ID, user.Phone, user.Openid, -time.Minute)
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	r := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证禁用账号携带有效 token 也被拦截为 403。
func TestUserStatusCheck_DisabledAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig()
	gdb := testutils.SetupDB(t)
	_, token := seedAuthUser(t, gdb, 0, 1)

	r := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：验证状态缓存清除后能看到最新的禁用状态。
func TestUserStatusCheck_CacheInvalidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig()
	gdb := testutils.SetupDB(t)
	user, token := seedAuthUser(t, gdb, 1, 1)

	r := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("期望首次请求 200，实际为 %d", w.Code)
	}

	if err := gdb.Model(user).UpdateColumn("status", 0).Error; err != nil {
		t.Fatalf("禁用用户失败: %v", err)
	}
	ClearUserStateCache(user.ID)

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req2.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusForbidden {
		t.Fatalf("期望禁用后 403，实际为 %d", w2.Code)
	}
}

// 测试内容：验证可选认证对游客放行、对有效 token 注入等级。
func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig()
	gdb := testutils.SetupDB(t)
	_, token := seedAuthUser(t, gdb, 1, 4)

	r := gin.New()
	r.GET("/open", OptionalAuth(), func(c *gin.Context) {
		if level, exists := c.Get("level"); exists {
			c.JSON(200, gin.H{"level": level})
			return
		}
		c.JSON(200, gin.H{"level": nil})
	})

	// 游客
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"level":null`) {
		t.Fatalf("游客应放行且无等级: %d %s", w.Code, w.Body.String())
	}

	// 带无效 token 仍放行
	req2 := httptest.NewRequest(http.MethodGet, "/open", nil)
	req2.Header.Set("Authorization", "Bearer garbage")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("无效 token 应按游客放行: %d", w2.Code)
	}

	// 有效 token 注入等级
	req3 := httptest.NewRequest(http.MethodGet, "/open", nil)
	req3.Header.Set("Authorization", "Bearer "+token)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req3)
	if w3.Code != http.StatusOK || !strings.Contains(w3.Body.String(), `"level":4`) {
		t.Fatalf("期望注入等级 4: %d %s", w3.Code, w3.Body.String())
	}
}
