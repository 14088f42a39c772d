package wechat

// 微信接口响应结构。平台逻辑错误通过 errcode/errmsg 原样透传，
// 调用方必须检查这些字段；只有传输层失败才以 error 返回。

// SessionResult code2session 响应
type SessionResult struct {
	Openid     string `json:"openid"`
	SessionKey string `json:"session_key"`
	Unionid    string `json:"unionid"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// OK 平台是否返回了可用的 openid
func (r *SessionResult) OK() bool {
	return r.ErrCode == 0 && r.Openid != ""
}

// PhoneInfo 手机号信息
type PhoneInfo struct {
	PhoneNumber     string `json:"phoneNumber"`
	PurePhoneNumber string `json:"purePhoneNumber"`
	CountryCode     string `json:"countryCode"`
	Watermark       struct {
		Timestamp int64  `json:"timestamp"`
		AppID     string `json:"appid"`
	} `json:"watermark"`
}

// PhoneResult getuserphonenumber 响应
type PhoneResult struct {
	PhoneInfo *PhoneInfo `json:"phone_info"`
	ErrCode   int        `json:"errcode"`
	ErrMsg    string     `json:"errmsg"`
}

// OK 平台是否返回了手机号
func (r *PhoneResult) OK() bool {
	return r.ErrCode == 0 && r.PhoneInfo != nil && r.PhoneInfo.PhoneNumber != ""
}

// accessTokenResult token 接口响应
type accessTokenResult struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}
