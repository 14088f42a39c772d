package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hhhhhhjs/shopping-mall-program/internal/consts"
	"github.com/hhhhhhjs/shopping-mall-program/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByPhone(phone string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateByPhone 手机号是唯一的身份锚点。
// 已存在：openid 不同则覆盖，并刷新最后登录时间。
// 不存在：按默认值创建；并发首登引起的唯一键冲突通过重读现有行化解，
// 不向调用方暴露 duplicate-key 错误。
func (r *UserRepository) FindOrCreateByPhone(phone string, openid string) (*model.User, error) {
	user, err := r.FindByPhone(phone)
	if err == nil {
		return r.touchLogin(user, openid)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	newUser := model.User{
		Phone:       phone,
		Openid:      openid,
		Nickname:    defaultNickname(phone),
		Level:       consts.UserLevelMin,
		Points:      0,
		Status:      consts.UserStatusEnabled,
		LastLoginAt: &now,
	}

	if err := r.db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发首登：另一请求已经创建，重读并走已存在分支
			existing, readErr := r.FindByPhone(phone)
			if readErr != nil {
				return nil, readErr
			}
			return r.touchLogin(existing, openid)
		}
		return nil, err
	}

	log.Printf("✅ 新用户创建成功: id=%d, phone=%s", newUser.ID, phone)

	// 按主键重读，拿到数据库侧填充的时间戳
	return r.FindByID(newUser.ID)
}

func (r *UserRepository) touchLogin(user *model.User, openid string) (*model.User, error) {
	now := time.Now()
	updates := map[string]interface{}{"last_login_at": now}
	if openid != "" && user.Openid != openid {
		updates["openid"] = openid
		user.Openid = openid
	}
	if err := r.db.Model(&model.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	return user, nil
}

func (r *UserRepository) UpdateByID(userID uint, updates map[string]interface{}) error {
	var user model.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return err
	}
	return r.db.Model(&user).Updates(updates).Error
}

// UpdatePoints 原子条件更新积分并在同一事务写入明细。
// 条件 points + delta >= 0 在更新语句内强制；零行生效返回 ErrInsufficientPoints。
func (r *UserRepository) UpdatePoints(userID uint, delta int, recordType int, remark string) (int, error) {
	var balance int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ? AND points + ? >= 0", userID, delta).
			UpdateColumn("points", gorm.Expr("points + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientPoints
		}

		var user model.User
		if err := tx.Select("points").First(&user, userID).Error; err != nil {
			return err
		}
		balance = user.Points

		record := model.PointsRecord{
			UserID:  userID,
			Points:  delta,
			Balance: balance,
			Type:    recordType,
			Remark:  remark,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *UserRepository) ListPointsRecords(userID uint, offset int, limit int) ([]model.PointsRecord, int64, error) {
	var records []model.PointsRecord
	var total int64

	query := r.db.Model(&model.PointsRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func defaultNickname(phone string) string {
	if len(phone) < 4 {
		return "用户" + phone
	}
	return fmt.Sprintf("用户%s", phone[len(phone)-4:])
}
