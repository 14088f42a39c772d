package repository

import (
	"fmt"
	"strings"

	"github.com/hhhhhhjs/shopping-mall-program/internal/model"

	"gorm.io/gorm"
)

type GoodsRepository struct {
	db *gorm.DB
}

func NewGoodsRepository(db *gorm.DB) *GoodsRepository {
	return &GoodsRepository{db: db}
}

func (r *GoodsRepository) ListCategories() ([]model.GoodsCategory, error) {
	var categories []model.GoodsCategory
	err := r.db.Where("status = 1").
		Order("sort_order ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GoodsRepository) ListGoods(params GoodsListParams) ([]model.Goods, int64, error) {
	query := r.db.Model(&model.Goods{}).Where("status = 1")

	kw := strings.TrimSpace(params.Keyword)
	if kw != "" {
		query = query.Where("name LIKE ?", "%"+kw+"%")
	}
	if len(params.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", params.CategoryIDs)
	}
	if params.SupportPoints != nil {
		query = query.Where("support_points = ?", *params.SupportPoints)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(buildGoodsOrder(params))

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var goods []model.Goods
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&goods).Error; err != nil {
		return nil, 0, err
	}
	return goods, total, nil
}

func (r *GoodsRepository) FindGoodsByID(id uint) (*model.Goods, error) {
	var goods model.Goods
	if err := r.db.Where("status = 1").First(&goods, id).Error; err != nil {
		return nil, err
	}
	return &goods, nil
}

// buildGoodsOrder 按排序字段拼接 ORDER BY；价格排序按用户等级选价格档。
// 列名来自白名单拼接，不含任何用户输入。
func buildGoodsOrder(params GoodsListParams) string {
	direction := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		direction = "ASC"
	}

	switch params.SortField {
	case "price":
		level := params.UserLevel
		if level < 1 || level > 4 {
			level = 1
		}
		return fmt.Sprintf("price%d %s, sort_order ASC", level, direction)
	case "createdAt":
		return fmt.Sprintf("created_at %s", direction)
	default:
		return "sort_order ASC, id DESC"
	}
}
