package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common/httpx"
	"github.com/hhhhhhjs/shopping-mall-program/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			client := value.(*client)
			if time.Since(client.lastSeen) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// LoginRateLimit 登录接口按 IP 限流，防止凭证爆破与网关配额消耗
func LoginRateLimit() gin.HandlerFunc {
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := config.Get().RateLimit
		if !cfg.Enabled {
			c.Next()
			return
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(cfg.LoginRPS), cfg.LoginBurst)
		})

		l := limiter.getLimiter(c.ClientIP())

		// 配置热更新后同步生效
		if l.Limit() != rate.Limit(cfg.LoginRPS) {
			l.SetLimit(rate.Limit(cfg.LoginRPS))
		}
		if l.Burst() != cfg.LoginBurst {
			l.SetBurst(cfg.LoginBurst)
		}

		if !l.Allow() {
			c.JSON(http.StatusTooManyRequests, httpx.Envelope{
				Code:    http.StatusTooManyRequests,
				Message: "请求过于频繁，请稍后再试",
				Data:    nil,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
