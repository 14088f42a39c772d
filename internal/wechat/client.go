package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common"
	"github.com/hhhhhhjs/shopping-mall-program/internal/config"

	"golang.org/x/sync/singleflight"
)

// Client 封装微信小程序平台的三个远程操作，并缓存 access_token。
// token 缓存是进程级单槽状态：启动为空，过期后整体替换，不做读改写。
type Client struct {
	httpClient *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time

	// 并发请求同时发现 token 过期时，只允许一个刷新在途
	refreshGroup singleflight.Group
}

func NewClient() *Client {
	cfg := config.Get()
	timeout := time.Duration(cfg.Wechat.TimeoutSecond) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetAccessToken 返回缓存中未过期的 token；否则请求新 token 并整体替换缓存。
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.expires) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	// singleflight：并发过期只触发一次远程刷新，其余调用等待结果
	v, err, _ := c.refreshGroup.Do("access_token", func() (interface{}, error) {
		// 进入刷新前再查一次，避免排队的调用重复刷新
		c.mu.Lock()
		if c.token != "" && time.Now().Before(c.expires) {
			token := c.token
			c.mu.Unlock()
			return token, nil
		}
		c.mu.Unlock()

		return c.refreshAccessToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	cfg := config.Get()
	endpoint := fmt.Sprintf("%s/cgi-bin/token?grant_type=client_credential&appid=%s&secret=%s",
		cfg.Wechat.APIBase, url.QueryEscape(cfg.Wechat.AppID), url.QueryEscape(cfg.Wechat.AppSecret))

	var result accessTokenResult
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return "", err
	}

	if result.ErrCode != 0 {
		return "", common.NewGatewayError(result.ErrCode, "获取 access_token 失败: "+result.ErrMsg)
	}
	if result.AccessToken == "" {
		return "", common.NewGatewayError(0, "获取 access_token 失败: 响应无效")
	}

	margin := time.Duration(cfg.Wechat.TokenMarginSec) * time.Second
	ttl := time.Duration(result.ExpiresIn)*time.Second - margin
	if ttl <= 0 {
		ttl = time.Minute
	}

	c.mu.Lock()
	c.token = result.AccessToken
	c.expires = time.Now().Add(ttl)
	c.mu.Unlock()

	return result.AccessToken, nil
}

// Code2Session 用登录 code 换取 openid/session_key。
// 平台逻辑错误保留在返回值里原样透传，error 仅代表传输失败。
func (c *Client) Code2Session(ctx context.Context, code string) (*SessionResult, error) {
	cfg := config.Get()
	endpoint := fmt.Sprintf("%s/sns/jscode2session?appid=%s&secret=%s&js_code=%s&grant_type=authorization_code",
		cfg.Wechat.APIBase, url.QueryEscape(cfg.Wechat.AppID), url.QueryEscape(cfg.Wechat.AppSecret), url.QueryEscape(code))

	var result SessionResult
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPhoneNumber 用手机号授权 code 换取手机号，内部先取 access_token。
func (c *Client) GetPhoneNumber(ctx context.Context, phoneCode string) (*PhoneResult, error) {
	accessToken, err := c.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	cfg := config.Get()
	endpoint := fmt.Sprintf("%s/wxa/business/getuserphonenumber?access_token=%s",
		cfg.Wechat.APIBase, url.QueryEscape(accessToken))

	body, err := json.Marshal(map[string]string{"code": phoneCode})
	if err != nil {
		return nil, common.NewInternalError("构造请求体失败")
	}

	var result PhoneResult
	if err := c.postJSON(ctx, endpoint, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InvalidateToken 清空缓存槽，仅供测试使用。
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.expires = time.Time{}
	c.mu.Unlock()
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	return c.doJSON(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body []byte, out interface{}) error {
	return c.doJSON(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, out)
}

// doJSON 执行请求并做有限次重试；重试只针对传输层失败。
func (c *Client) doJSON(ctx context.Context, build func() (*http.Request, error), out interface{}) error {
	retries := config.Get().Wechat.RetryCount
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return common.NewGatewayError(0, "请求微信接口超时")
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		req, err := build()
		if err != nil {
			return common.NewInternalError("构造微信请求失败")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if err := json.Unmarshal(data, out); err != nil {
			// 响应体不是合法 JSON，视为传输层失败
			lastErr = err
			continue
		}
		return nil
	}

	return common.NewGatewayError(0, fmt.Sprintf("微信接口不可达: %v", lastErr))
}
