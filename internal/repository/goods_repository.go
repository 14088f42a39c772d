package repository

import "github.com/hhhhhhjs/shopping-mall-program/internal/model"

// GoodsListParams 商品列表查询条件
type GoodsListParams struct {
	Keyword       string
	CategoryIDs   []uint
	SupportPoints *bool
	SortField     string // price | createdAt
	SortOrder     string // asc | desc
	Page          int
	PageSize      int
	UserLevel     int // 价格排序时选择对应价格档
}

type GoodsStore interface {
	ListCategories() ([]model.GoodsCategory, error)
	ListGoods(params GoodsListParams) ([]model.Goods, int64, error)
	FindGoodsByID(id uint) (*model.Goods, error)
}
