package model

import "time"

// PointsRecord 积分变动明细，与余额更新同一事务写入
type PointsRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	Points    int       `json:"points"`  // 变动值，正加负减
	Balance   int       `json:"balance"` // 变动后的余额
	Type      int       `json:"type"`    // 见 consts.PointsRecord*
	OrderID   *uint     `json:"orderId"`
	Remark    string    `json:"remark" gorm:"size:255"`
	CreatedAt time.Time `json:"createdAt"`
}
