package models

import "gorm.io/gorm"

// User 管理员账户
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;type:varchar(100);not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}
