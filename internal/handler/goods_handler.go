package handler

import (
	"strconv"
	"strings"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common/httpx"
	"github.com/hhhhhhjs/shopping-mall-program/internal/consts"
	repo "github.com/hhhhhhjs/shopping-mall-program/internal/repository"

	"github.com/gin-gonic/gin"
)

// 游客统一按 1 级价展示，登录用户取 token 中携带的等级对应档位。
func currentUserLevel(c *gin.Context) int {
	value, exists := c.Get("level")
	if !exists {
		return consts.UserLevelMin
	}
	level, ok := value.(int)
	if !ok || level < consts.UserLevelMin || level > consts.UserLevelMax {
		return consts.UserLevelMin
	}
	return level
}

// GetCategories 商品分类列表
func (h *GoodsHandler) GetCategories(c *gin.Context) {
	categories, err := h.goodsService.ListCategories()
	if err != nil {
		httpx.WriteServiceError(c, err, "获取分类失败")
		return
	}
	httpx.OK(c, categories)
}

// GetGoodsList 商品列表，支持关键字、分类、积分兑换筛选与价格/上架时间排序
func (h *GoodsHandler) GetGoodsList(c *gin.Context) {
	params := repo.GoodsListParams{
		Keyword:   strings.TrimSpace(c.Query("keyword")),
		SortField: c.Query("sortField"),
		SortOrder: c.Query("sortOrder"),
		UserLevel: currentUserLevel(c),
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	if raw := c.Query("categoryIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil {
				httpx.WriteValidationError(c, "分类ID格式错误")
				return
			}
			params.CategoryIDs = append(params.CategoryIDs, uint(id))
		}
	}

	if raw := c.Query("supportPoints"); raw != "" {
		supportPoints, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.WriteValidationError(c, "supportPoints 参数格式错误")
			return
		}
		params.SupportPoints = &supportPoints
	}

	result, err := h.goodsService.ListGoods(params)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取商品列表失败")
		return
	}
	httpx.OK(c, result)
}

// GetGoodsDetail 商品详情
func (h *GoodsHandler) GetGoodsDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httpx.WriteValidationError(c, "商品ID格式错误")
		return
	}

	item, err := h.goodsService.GetGoodsDetail(uint(id), currentUserLevel(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取商品详情失败")
		return
	}
	httpx.OK(c, item)
}
