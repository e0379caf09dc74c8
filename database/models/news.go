package models

import (
	"time"

	"gorm.io/gorm"
)

// 新闻类型常量
const (
	NewsTypeNotice   = "NOTICE"
	NewsTypePress    = "PRESS"
	NewsTypeEvent    = "EVENT"
	NewsTypeWorkshop = "WORKSHOP"
)

// IsValidNewsType 校验新闻类型
func IsValidNewsType(t string) bool {
	switch t {
	case NewsTypeNotice, NewsTypePress, NewsTypeEvent, NewsTypeWorkshop:
		return true
	}
	return false
}

// News 新闻/公告
type News struct {
	gorm.Model
	Title   string    `gorm:"type:varchar(200);not null" json:"title"`
	Type    string    `gorm:"type:varchar(16);not null" json:"type"`
	Date    time.Time `gorm:"index;not null" json:"date"`
	Content string    `gorm:"type:text;not null" json:"content"`

	ImagePath     string `gorm:"type:varchar(255)" json:"-"`
	ImageData     []byte `gorm:"type:blob" json:"-"`
	ImageMimeType string `gorm:"type:varchar(64)" json:"-"`

	Link     string `gorm:"type:varchar(255)" json:"link,omitempty"`
	Featured bool   `gorm:"default:false;not null" json:"featured"`
}

// HasImage 是否存有图片（任一策略）
func (n *News) HasImage() bool {
	return len(n.ImageData) > 0 || n.ImagePath != ""
}
