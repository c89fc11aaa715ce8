package models

import "time"

const (
	BannerPositionHeader  = "header"
	BannerPositionSidebar = "sidebar"
	BannerPositionFooter  = "footer"
	BannerPositionInline  = "inline"
)

const (
	BannerStatusPending   = "pending"
	BannerStatusActive    = "active"
	BannerStatusPaused    = "paused"
	BannerStatusCompleted = "completed"
)

// BannerPositions lists every valid ad slot.
var BannerPositions = []string{
	BannerPositionHeader,
	BannerPositionSidebar,
	BannerPositionFooter,
	BannerPositionInline,
}

// BannerAd is a paid creative shown in one of the fixed ad slots. Impressions
// and clicks are incremented best-effort by display and click events; expiry
// is evaluated lazily against EndDate, never by a sweep job.
type BannerAd struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Position        string     `gorm:"type:varchar(32);not null;index:idx_banner_ads_position_status,priority:1" json:"position"`
	BrandName       string     `gorm:"type:varchar(150);not null" json:"brand_name"`
	Title           string     `gorm:"type:varchar(200);not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	ImageURL        string     `gorm:"type:varchar(255);default:null" json:"image_url"`
	LinkURL         string     `gorm:"type:varchar(255);default:null" json:"link_url"`
	CTAText         string     `gorm:"type:varchar(100);default:null" json:"cta_text"`
	BackgroundColor string     `gorm:"type:varchar(16);default:null" json:"background_color"`
	TextColor       string     `gorm:"type:varchar(16);default:null" json:"text_color"`
	Status          string     `gorm:"type:varchar(32);not null;default:'pending';index:idx_banner_ads_position_status,priority:2" json:"status"`
	Priority        int        `gorm:"not null;default:0" json:"priority"`
	EndDate         *time.Time `gorm:"type:timestamp;default:null" json:"end_date,omitempty"`
	Impressions     int64      `gorm:"default:0" json:"impressions"`
	Clicks          int64      `gorm:"default:0" json:"clicks"`
	PricePaid       int        `gorm:"not null;default:0" json:"price_paid"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired reports whether the creative's end date has passed. A creative
// with no end date never expires.
func (b *BannerAd) IsExpired(now time.Time) bool {
	return b.EndDate != nil && !b.EndDate.After(now)
}

// IsServable reports whether the creative may be shown in its slot: active
// status and not expired.
func (b *BannerAd) IsServable(now time.Time) bool {
	return b.Status == BannerStatusActive && !b.IsExpired(now)
}

// CTR returns the click-through rate as a percentage, 0 when there are no
// impressions.
func (b *BannerAd) CTR() float64 {
	if b.Impressions == 0 {
		return 0
	}
	return float64(b.Clicks) / float64(b.Impressions) * 100
}

// IsValidBannerPosition reports whether position names a known ad slot.
func IsValidBannerPosition(position string) bool {
	for _, p := range BannerPositions {
		if p == position {
			return true
		}
	}
	return false
}

// IsValidBannerStatus reports whether status is a known banner lifecycle state.
func IsValidBannerStatus(status string) bool {
	switch status {
	case BannerStatusPending, BannerStatusActive, BannerStatusPaused, BannerStatusCompleted:
		return true
	default:
		return false
	}
}
