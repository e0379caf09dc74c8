package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestStatusAt 展览状态按天粒度推导
func TestStatusAt(t *testing.T) {
	loc := time.UTC
	exhibition := &Exhibition{
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2025, 3, 20, 0, 0, 0, 0, loc),
	}

	tests := []struct {
		name string
		now  time.Time
		want ExhibitionStatus
	}{
		{"day before start", time.Date(2025, 3, 9, 23, 59, 0, 0, loc), ExhibitionUpcoming},
		{"start day morning", time.Date(2025, 3, 10, 0, 0, 1, 0, loc), ExhibitionCurrent},
		{"middle of run", time.Date(2025, 3, 15, 12, 0, 0, 0, loc), ExhibitionCurrent},
		{"end day evening", time.Date(2025, 3, 20, 23, 0, 0, 0, loc), ExhibitionCurrent},
		{"day after end", time.Date(2025, 3, 21, 0, 0, 1, 0, loc), ExhibitionPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exhibition.StatusAt(tt.now))
		})
	}
}

// TestStatusAt_TimeOfDayIgnored 日期里带的时分秒不影响状态
func TestStatusAt_TimeOfDayIgnored(t *testing.T) {
	loc := time.UTC
	exhibition := &Exhibition{
		StartDate: time.Date(2025, 3, 10, 18, 30, 0, 0, loc),
		EndDate:   time.Date(2025, 3, 20, 6, 0, 0, 0, loc),
	}

	assert.Equal(t, ExhibitionCurrent, exhibition.StatusAt(time.Date(2025, 3, 10, 1, 0, 0, 0, loc)))
	assert.Equal(t, ExhibitionCurrent, exhibition.StatusAt(time.Date(2025, 3, 20, 23, 0, 0, 0, loc)))
}

func TestHasPoster(t *testing.T) {
	assert.False(t, (&Exhibition{}).HasPoster())
	assert.True(t, (&Exhibition{PosterData: []byte{1}}).HasPoster())
	assert.True(t, (&Exhibition{PosterPath: "posters/a.webp"}).HasPoster())

	assert.False(t, (&ExhibitionImage{}).HasImage())
	assert.True(t, (&ExhibitionImage{Data: []byte{1}}).HasImage())
	assert.True(t, (&ExhibitionImage{Path: "exhibitions/a.webp"}).HasImage())
}
