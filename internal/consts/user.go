package consts

// 用户状态
const (
	UserStatusDisabled = 0 // 禁用，登录时拒绝
	UserStatusEnabled  = 1 // 正常
)

// 用户等级 (1-4)，对应商品的四档价格
const (
	UserLevelMin = 1
	UserLevelMax = 4
)
