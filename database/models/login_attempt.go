package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginAttempt 按 IP 记录的登录失败计数
// Attempts 达到上限时写入 LockedAt，窗口期内拒绝后续尝试
type LoginAttempt struct {
	gorm.Model
	IP       string     `gorm:"uniqueIndex;type:varchar(64);not null"`
	Attempts int        `gorm:"default:0;not null"`
	LockedAt *time.Time `gorm:""`
}
