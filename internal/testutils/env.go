package testutils

import (
	"github.com/hhhhhhjs/shopping-mall-program/internal/config"
)

// SetupConfig installs a minimal test configuration snapshot.
func SetupConfig() {
	config.StoreForTest(config.Config{
		Server: config.ServerConfig{Port: "0", Mode: "test"},
		JWT:    config.JWTConfig{Secret: "test_secret", ExpirationSecond: 7200},
		Wechat: config.WechatConfig{
			AppID:          "wx_test_appid",
			AppSecret:      "wx_test_secret",
			APIBase:        "https://api.weixin.qq.com",
			TimeoutSecond:  2,
			RetryCount:     1,
			TokenMarginSec: 300,
		},
		Upload: config.UploadConfig{AvatarPath: "uploads/avatars", AvatarURLPrefix: "/avatars/", MaxSizeMB: 5},
	})
}
