package repository

import (
	"errors"

	"github.com/hhhhhhjs/shopping-mall-program/internal/model"
)

// ErrInsufficientPoints 余额不足或用户不存在（条件更新零行生效）
var ErrInsufficientPoints = errors.New("积分不足或用户不存在")

type UserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByPhone(phone string) (*model.User, error)
	FindOrCreateByPhone(phone string, openid string) (*model.User, error)
	UpdateByID(userID uint, updates map[string]interface{}) error
	UpdatePoints(userID uint, delta int, recordType int, remark string) (int, error)
	ListPointsRecords(userID uint, offset int, limit int) ([]model.PointsRecord, int64, error)
}
