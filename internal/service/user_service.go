package service

import (
	"errors"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common"
	"github.com/hhhhhhjs/shopping-mall-program/internal/model"
	repo "github.com/hhhhhhjs/shopping-mall-program/internal/repository"

	"gorm.io/gorm"
)

// UserInfo 用户详情投影
type UserInfo struct {
	ID          uint       `json:"id"`
	Phone       string     `json:"phone"`
	Nickname    string     `json:"nickname"`
	Avatar      string     `json:"avatar"`
	RealName    string     `json:"realName"`
	CompanyName string     `json:"companyName"`
	Level       int        `json:"level"`
	Points      int        `json:"points"`
	Status      int        `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

// UpdateProfileParams 用户可自助修改的字段
type UpdateProfileParams struct {
	Nickname    *string `json:"nickname"`
	Avatar      *string `json:"avatar"`
	RealName    *string `json:"realName"`
	CompanyName *string `json:"companyName"`
}

func (s *UserService) GetUserInfo(userID uint) (*UserInfo, error) {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("用户不存在")
		}
		return nil, common.NewStorageError("用户目录不可用")
	}
	info := userInfoFrom(user)
	return &info, nil
}

func (s *UserService) UpdateProfile(userID uint, params UpdateProfileParams) (*UserInfo, error) {
	updates := map[string]interface{}{}
	if params.Nickname != nil {
		updates["nickname"] = *params.Nickname
	}
	if params.Avatar != nil {
		updates["avatar"] = *params.Avatar
	}
	if params.RealName != nil {
		updates["real_name"] = *params.RealName
	}
	if params.CompanyName != nil {
		updates["company_name"] = *params.CompanyName
	}

	if len(updates) > 0 {
		if err := s.userStore.UpdateByID(userID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.NewNotFoundError("用户不存在")
			}
			return nil, common.NewStorageError("用户目录不可用")
		}
	}

	return s.GetUserInfo(userID)
}

func (s *UserService) GetPoints(userID uint) (int, error) {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, common.NewNotFoundError("用户不存在")
		}
		return 0, common.NewStorageError("用户目录不可用")
	}
	return user.Points, nil
}

// AdjustPoints 调整积分余额；余额不足以明确的校验错误报出，余额不被部分应用。
func (s *UserService) AdjustPoints(userID uint, delta int, recordType int, remark string) (int, error) {
	balance, err := s.userStore.UpdatePoints(userID, delta, recordType, remark)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientPoints) {
			return 0, common.NewValidationError("积分不足或用户不存在")
		}
		return 0, common.NewStorageError("积分更新失败")
	}
	return balance, nil
}

func (s *UserService) ListPointsRecords(userID uint, page int, pageSize int) ([]model.PointsRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	records, total, err := s.userStore.ListPointsRecords(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, common.NewStorageError("积分明细读取失败")
	}
	return records, total, nil
}

func userInfoFrom(user *model.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Phone:       user.Phone,
		Nickname:    user.Nickname,
		Avatar:      user.Avatar,
		RealName:    user.RealName,
		CompanyName: user.CompanyName,
		Level:       user.Level,
		Points:      user.Points,
		Status:      user.Status,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}
