package handler

import (
	"net/http"
	"strconv"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common/httpx"
	"github.com/hhhhhhjs/shopping-mall-program/internal/consts"
	"github.com/hhhhhhjs/shopping-mall-program/internal/middleware"
	"github.com/hhhhhhjs/shopping-mall-program/internal/service"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("id")
	if !exists {
		return 0, false
	}
	uid, ok := value.(uint)
	return uid, ok
}

// GetSelfInfo 获取当前用户信息
func (h *UserHandler) GetSelfInfo(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		httpx.WriteUnauthorized(c, "获取用户ID失败")
		return
	}

	info, err := h.userService.GetUserInfo(uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户信息失败")
		return
	}
	httpx.OK(c, info)
}

// UpdateSelfInfo 修改昵称、真实姓名、公司名等资料字段，只更新出现的字段
func (h *UserHandler) UpdateSelfInfo(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		httpx.WriteUnauthorized(c, "获取用户ID失败")
		return
	}

	var params service.UpdateProfileParams
	if err := c.ShouldBindJSON(&params); err != nil {
		httpx.WriteValidationError(c, "参数错误")
		return
	}
	if params.Nickname != nil && *params.Nickname == "" {
		httpx.WriteValidationError(c, "昵称不能为空")
		return
	}

	info, err := h.userService.UpdateProfile(uid, params)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新失败")
		return
	}
	middleware.ClearUserStateCache(uid)
	httpx.OK(c, info)
}

// GetSelfPoints 查询当前积分余额
func (h *UserHandler) GetSelfPoints(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		httpx.WriteUnauthorized(c, "获取用户ID失败")
		return
	}

	points, err := h.userService.GetPoints(uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取积分失败")
		return
	}
	httpx.OK(c, gin.H{"points": points})
}

// GetSelfPointsRecords 分页查询积分明细
func (h *UserHandler) GetSelfPointsRecords(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		httpx.WriteUnauthorized(c, "获取用户ID失败")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	records, total, err := h.userService.ListPointsRecords(uid, page, pageSize)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取积分明细失败")
		return
	}
	httpx.OK(c, gin.H{
		"list":  records,
		"total": total,
	})
}

// ExchangePoints 积分兑换扣减，余额不足直接拒绝
func (h *UserHandler) ExchangePoints(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		httpx.WriteUnauthorized(c, "获取用户ID失败")
		return
	}

	var req struct {
		Points int    `json:"points" binding:"required"`
		Remark string `json:"remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Points <= 0 {
		httpx.WriteValidationError(c, "兑换积分数必须为正整数")
		return
	}

	balance, err := h.userService.AdjustPoints(uid, -req.Points, consts.PointsRecordExchange, req.Remark)
	if err != nil {
		httpx.WriteServiceError(c, err, "积分兑换失败")
		return
	}
	httpx.OK(c, gin.H{"balance": balance})
}

// UpdateSelfAvatar 上传并更新头像
func (h *UserHandler) UpdateSelfAvatar(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		httpx.WriteUnauthorized(c, "获取用户ID失败")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httpx.WriteValidationError(c, "请选择文件")
		return
	}

	avatarURL, err := h.userService.UpdateAvatar(uid, file)
	if err != nil {
		httpx.WriteServiceError(c, err, "头像更新失败")
		return
	}
	middleware.ClearUserStateCache(uid)
	c.JSON(http.StatusOK, httpx.Envelope{Code: 0, Message: "头像更新成功", Data: gin.H{"avatar": avatarURL}})
}
