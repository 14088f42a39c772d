package model

import (
	"time"
)

// User 用户实体，手机号为唯一身份锚点
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Phone       string     `json:"phone" gorm:"uniqueIndex;size:20;not null"`
	Openid      string     `json:"-" gorm:"index;size:64"`
	Unionid     string     `json:"-" gorm:"size:64"`
	Nickname    string     `json:"nickname" gorm:"size:64"`
	Avatar      string     `json:"avatar" gorm:"size:255"`
	RealName    string     `json:"realName" gorm:"size:64"`
	CompanyName string     `json:"companyName" gorm:"size:128"`
	Level       int        `json:"level" gorm:"default:1"`  // 1-4，对应四档价格
	Points      int        `json:"points" gorm:"default:0"` // 积分余额，恒 >= 0
	Status      int        `json:"status" gorm:"default:1"` // 0: 禁用, 1: 正常
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}
