package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/hhhhhhjs/shopping-mall-program/internal/common"
	"github.com/hhhhhhjs/shopping-mall-program/internal/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var avatarAllowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateAvatarFile 校验头像文件的大小与后缀
func ValidateAvatarFile(file *multipart.FileHeader) (string, error) {
	maxSizeMB := config.Get().Upload.MaxSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	if file.Size > maxSizeMB*1024*1024 {
		return "", fmt.Errorf("文件大小不能超过 %dMB", maxSizeMB)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", errors.New("无法识别文件类型")
	}
	if !avatarAllowedExts[ext] {
		return "", fmt.Errorf("不支持的文件类型: %s", ext)
	}
	return ext, nil
}

// UpdateAvatar 保存新头像文件并更新用户记录，成功后删除旧头像。
// 文件落盘在 <avatar_path>/<userID>/ 下，文件名随机生成避免覆盖与猜测。
func (s *UserService) UpdateAvatar(userID uint, file *multipart.FileHeader) (string, error) {
	ext, err := ValidateAvatarFile(file)
	if err != nil {
		return "", common.NewValidationError(err.Error())
	}

	user, err := s.userStore.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", common.NewNotFoundError("用户不存在")
		}
		return "", common.NewStorageError("用户目录不可用")
	}

	avatarRoot := config.Get().Upload.AvatarPath
	if avatarRoot == "" {
		avatarRoot = "uploads/avatars"
	}
	storageDir := filepath.Join(avatarRoot, fmt.Sprintf("%d", user.ID))
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		log.Printf("❌ 创建头像目录失败: %v", err)
		return "", common.NewInternalError("系统错误: 无法创建存储目录")
	}

	newFilename := uuid.New().String() + ext
	dstPath := filepath.Join(storageDir, newFilename)

	src, err := file.Open()
	if err != nil {
		return "", common.NewValidationError("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dstPath)
	if err != nil {
		log.Printf("❌ 创建头像文件失败: %v", err)
		return "", common.NewInternalError("系统错误: 无法创建文件")
	}
	defer func() { _ = out.Close() }()

	if _, err = io.Copy(out, src); err != nil {
		log.Printf("❌ 头像保存失败: %v", err)
		return "", common.NewInternalError("文件保存失败")
	}

	oldAvatar := user.Avatar

	avatarURL := config.Get().Upload.AvatarURLPrefix + fmt.Sprintf("%d/%s", user.ID, newFilename)
	if err := s.userStore.UpdateByID(user.ID, map[string]interface{}{"avatar": avatarURL}); err != nil {
		_ = os.Remove(dstPath) // 回滚文件
		log.Printf("❌ 头像入库失败: %v", err)
		return "", common.NewStorageError("系统错误: 数据库更新失败")
	}

	// 删除旧头像文件，仅处理本服务托管的路径
	if oldAvatar != "" && strings.HasPrefix(oldAvatar, config.Get().Upload.AvatarURLPrefix) {
		oldRel := strings.TrimPrefix(oldAvatar, config.Get().Upload.AvatarURLPrefix)
		_ = os.Remove(filepath.Join(avatarRoot, filepath.FromSlash(oldRel)))
	}

	return avatarURL, nil
}
