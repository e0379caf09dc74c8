package models

import (
	"time"

	"gorm.io/gorm"
)

// ExhibitionStatus 展览状态，由日期区间在读取时推导，不落库
type ExhibitionStatus string

const (
	ExhibitionUpcoming ExhibitionStatus = "UPCOMING"
	ExhibitionCurrent  ExhibitionStatus = "CURRENT"
	ExhibitionPast     ExhibitionStatus = "PAST"
)

// Exhibition 展览
type Exhibition struct {
	gorm.Model
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Artist    string    `gorm:"type:varchar(200);not null" json:"artist"`
	StartDate time.Time `gorm:"index;not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`

	PosterPath     string `gorm:"type:varchar(255)" json:"-"`
	PosterData     []byte `gorm:"type:blob" json:"-"`
	PosterMimeType string `gorm:"type:varchar(64)" json:"-"`

	Description string `gorm:"type:text;not null" json:"description"`
	Curator     string `gorm:"type:varchar(200)" json:"curator,omitempty"`

	Images []ExhibitionImage `gorm:"foreignKey:ExhibitionID;constraint:OnDelete:CASCADE" json:"-"`
}

// ExhibitionImage 展览附属图片，按 Position 排序
type ExhibitionImage struct {
	gorm.Model
	ExhibitionID uint   `gorm:"index;not null"`
	Position     int    `gorm:"not null"`
	Path         string `gorm:"type:varchar(255)"`
	Data         []byte `gorm:"type:blob"`
	MimeType     string `gorm:"type:varchar(64)"`
}

// StatusAt 推导展览状态，按天粒度比较
func (e *Exhibition) StatusAt(now time.Time) ExhibitionStatus {
	today := truncateToDay(now)
	start := truncateToDay(e.StartDate)
	end := truncateToDay(e.EndDate)

	switch {
	case today.Before(start):
		return ExhibitionUpcoming
	case !today.After(end):
		return ExhibitionCurrent
	default:
		return ExhibitionPast
	}
}

// HasPoster 是否存有海报（任一策略）
func (e *Exhibition) HasPoster() bool {
	return len(e.PosterData) > 0 || e.PosterPath != ""
}

// HasImage 附属图片是否存有数据（任一策略）
func (i *ExhibitionImage) HasImage() bool {
	return len(i.Data) > 0 || i.Path != ""
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
