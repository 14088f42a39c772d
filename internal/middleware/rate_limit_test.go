package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hhhhhhjs/shopping-mall-program/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func storeRateLimitConfig(enabled bool, rps float64, burst int) {
	config.StoreForTest(config.Config{
		RateLimit: config.RateLimitConfig{Enabled: enabled, LoginRPS: rps, LoginBurst: burst},
	})
}

// 测试内容：验证超过突发额度后的请求被限流为 429。
func TestLoginRateLimit_Blocks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	storeRateLimitConfig(true, 1, 2)

	r := gin.New()
	r.GET("/login", LoginRateLimit(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	allowed, blocked := 0, 0
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		r.ServeHTTP(w, req)
		switch w.Code {
		case http.StatusOK:
			allowed++
		case http.StatusTooManyRequests:
			blocked++
		}
	}
	if allowed != 2 || blocked != 3 {
		t.Fatalf("期望放行 2 拦截 3，实际放行 %d 拦截 %d", allowed, blocked)
	}
}

// 测试内容：验证不同 IP 各自独立计数。
func TestLoginRateLimit_PerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	storeRateLimitConfig(true, 1, 1)

	r := gin.New()
	r.GET("/login", LoginRateLimit(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = ip
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("IP %s 首次请求应放行，实际为 %d", ip, w.Code)
		}
	}
}

// 测试内容：验证限流关闭时全部放行。
func TestLoginRateLimit_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	storeRateLimitConfig(false, 1, 1)

	r := gin.New()
	r.GET("/login", LoginRateLimit(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "10.0.0.9:1"
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("限流关闭时应放行，实际为 %d", w.Code)
		}
	}
}

// 测试内容：验证限速器按 IP 复用同一个实例。
func TestIPRateLimiter_ReusesLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	first := limiter.getLimiter("10.1.1.1")
	second := limiter.getLimiter("10.1.1.1")
	if first != second {
		t.Fatalf("同一 IP 应复用限速器实例")
	}
	other := limiter.getLimiter("10.1.1.2")
	if other == first {
		t.Fatalf("不同 IP 不应共享限速器实例")
	}
}
