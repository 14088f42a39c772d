package model

import "time"

// GoodsCategory 商品分类
type GoodsCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:64;not null"`
	Icon      string    `json:"icon" gorm:"size:255"`
	SortOrder int       `json:"sortOrder" gorm:"default:0"`
	Status    int       `json:"status" gorm:"default:1"` // 0: 下架, 1: 启用
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Goods 商品，四档价格对应用户等级 1-4
type Goods struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:128;not null"`
	Image         string    `json:"image" gorm:"size:255"`
	Images        string    `json:"-" gorm:"type:text"` // JSON 数组字符串
	Description   string    `json:"description" gorm:"type:text"`
	Spec          string    `json:"spec" gorm:"size:128"`
	CategoryID    uint      `json:"categoryId" gorm:"index"`
	CategoryName  string    `json:"categoryName" gorm:"size:64"`
	Stock         int       `json:"stock" gorm:"default:0"`
	ShowStock     bool      `json:"showStock" gorm:"default:false"`
	Price1        float64   `json:"-"`
	Price2        float64   `json:"-"`
	Price3        float64   `json:"-"`
	Price4        float64   `json:"-"`
	SupportPoints bool      `json:"supportPoints" gorm:"default:false"`
	PointsPrice   int       `json:"pointsPrice" gorm:"default:0"`
	Status        int       `json:"status" gorm:"default:1"`
	SortOrder     int       `json:"sortOrder" gorm:"default:0"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PriceForLevel 按用户等级取对应价格档，越界一律按 1 级价
func (g *Goods) PriceForLevel(level int) float64 {
	switch level {
	case 2:
		return g.Price2
	case 3:
		return g.Price3
	case 4:
		return g.Price4
	default:
		return g.Price1
	}
}
