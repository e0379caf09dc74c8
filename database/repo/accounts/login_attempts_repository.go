package accounts

import (
	"errors"
	"time"

	"github.com/space458/gallery-backend/database/models"
	"gorm.io/gorm"
)

// 登录节流参数
const (
	MaxLoginAttempts = 5
	LockoutWindow    = 60 * time.Second
)

// ErrTooManyAttempts 登录尝试次数超限错误
var ErrTooManyAttempts = errors.New("too many failed attempts")

// LoginAttemptRepository 按 IP 的登录失败计数仓库
type LoginAttemptRepository struct {
	db *gorm.DB
}

// NewLoginAttemptRepository 创建登录计数仓库
func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// Check 检查该 IP 是否处于锁定窗口内
// 锁定窗口已过时顺带清零计数，使下一次检查从零开始
func (r *LoginAttemptRepository) Check(ip string, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var attempt models.LoginAttempt
		err := tx.Where("ip = ?", ip).First(&attempt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if attempt.LockedAt == nil {
			return nil
		}

		if now.Sub(*attempt.LockedAt) < LockoutWindow {
			if attempt.Attempts >= MaxLoginAttempts {
				return ErrTooManyAttempts
			}
			return nil
		}

		// 窗口已过，重置计数
		return tx.Model(&attempt).Updates(map[string]interface{}{
			"attempts":  0,
			"locked_at": nil,
		}).Error
	})
}

// RecordFailure 记录一次失败，达到上限时写入锁定时间
// 读改写包在事务里，避免并发失败互相覆盖计数
func (r *LoginAttemptRepository) RecordFailure(ip string, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var attempt models.LoginAttempt
		err := tx.Where("ip = ?", ip).First(&attempt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&models.LoginAttempt{IP: ip, Attempts: 1}).Error
			}
			return err
		}

		attempt.Attempts++
		if attempt.Attempts >= MaxLoginAttempts {
			attempt.LockedAt = &now
		}
		return tx.Save(&attempt).Error
	})
}

// Clear 登录成功后清除该 IP 的记录
func (r *LoginAttemptRepository) Clear(ip string) error {
	return r.db.Unscoped().Where("ip = ?", ip).Delete(&models.LoginAttempt{}).Error
}

// Get 获取记录（测试用）
func (r *LoginAttemptRepository) Get(ip string) (*models.LoginAttempt, error) {
	var attempt models.LoginAttempt
	err := r.db.Where("ip = ?", ip).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}
