package models

import "gorm.io/gorm"

// GalleryInfo 画廊基本信息，单行记录，只做 upsert
type GalleryInfo struct {
	gorm.Model
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Address     string `gorm:"type:varchar(255);not null" json:"address"`
	Phone       string `gorm:"type:varchar(64);not null" json:"phone"`
	Email       string `gorm:"type:varchar(200);not null" json:"email"`
	Hours       string `gorm:"type:varchar(255)" json:"hours,omitempty"`
	Instagram   string `gorm:"type:varchar(200)" json:"instagram,omitempty"`
}
