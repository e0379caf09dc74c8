package models

import "gorm.io/gorm"

// 横幅类型常量
const (
	BannerTypeImage = "image"
	BannerTypeVideo = "video"
)

// Banner 首页横幅
// 图片按存储策略二选一：ImageData 列（blob）或 ImagePath（文件/对象存储相对路径）
type Banner struct {
	gorm.Model
	Title    string `gorm:"type:varchar(200);not null" json:"title"`
	Subtitle string `gorm:"type:varchar(200)" json:"subtitle,omitempty"`

	ImagePath     string `gorm:"type:varchar(255)" json:"-"`
	ImageData     []byte `gorm:"type:blob" json:"-"`
	ImageMimeType string `gorm:"type:varchar(64)" json:"-"`

	Link         string `gorm:"type:varchar(255)" json:"link,omitempty"`
	Type         string `gorm:"type:varchar(16);default:image;not null" json:"type"`
	DisplayOrder int    `gorm:"index;default:0;not null" json:"order"`
	Active       bool   `gorm:"default:true;not null" json:"active"`
}

// HasImage 是否存有图片（任一策略）
func (b *Banner) HasImage() bool {
	return len(b.ImageData) > 0 || b.ImagePath != ""
}
