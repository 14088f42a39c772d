package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common"
	"github.com/hhhhhhjs/shopping-mall-program/internal/model"
	repo "github.com/hhhhhhjs/shopping-mall-program/internal/repository"

	"gorm.io/gorm"
)

// GoodsItem 面向客户端的商品投影，price 已按用户等级折算，
// 四档原始价格不出服务层。
type GoodsItem struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	Images        []string  `json:"images"`
	Description   string    `json:"description"`
	Spec          string    `json:"spec"`
	CategoryID    uint      `json:"categoryId"`
	CategoryName  string    `json:"categoryName"`
	Stock         int       `json:"stock"`
	ShowStock     bool      `json:"showStock"`
	Price         float64   `json:"price"`
	SupportPoints bool      `json:"supportPoints"`
	PointsPrice   int       `json:"pointsPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GoodsList 分页结果
type GoodsList struct {
	List     []GoodsItem `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func (s *GoodsService) ListCategories() ([]model.GoodsCategory, error) {
	categories, err := s.goodsStore.ListCategories()
	if err != nil {
		return nil, common.NewStorageError("分类读取失败")
	}
	return categories, nil
}

func (s *GoodsService) ListGoods(params repo.GoodsListParams) (*GoodsList, error) {
	goods, total, err := s.goodsStore.ListGoods(params)
	if err != nil {
		return nil, common.NewStorageError("商品读取失败")
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	items := make([]GoodsItem, 0, len(goods))
	for i := range goods {
		items = append(items, goodsItemFrom(&goods[i], params.UserLevel))
	}
	return &GoodsList{List: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *GoodsService) GetGoodsDetail(id uint, userLevel int) (*GoodsItem, error) {
	goods, err := s.goodsStore.FindGoodsByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("商品不存在")
		}
		return nil, common.NewStorageError("商品读取失败")
	}
	item := goodsItemFrom(goods, userLevel)
	return &item, nil
}

func goodsItemFrom(goods *model.Goods, userLevel int) GoodsItem {
	return GoodsItem{
		ID:            goods.ID,
		Name:          goods.Name,
		Image:         goods.Image,
		Images:        parseImages(goods.Images),
		Description:   goods.Description,
		Spec:          goods.Spec,
		CategoryID:    goods.CategoryID,
		CategoryName:  goods.CategoryName,
		Stock:         goods.Stock,
		ShowStock:     goods.ShowStock,
		Price:         goods.PriceForLevel(userLevel),
		SupportPoints: goods.SupportPoints,
		PointsPrice:   goods.PointsPrice,
		CreatedAt:     goods.CreatedAt,
	}
}

// parseImages 解析 images JSON 字段；返回空数组而不是 nil，保证前端处理一致
func parseImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return []string{}
	}
	return images
}
