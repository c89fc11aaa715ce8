package models

import "time"

// UnlimitedCount marks a quota column as unlimited.
const UnlimitedCount = -1

// PlanLimit is reference data mapping a plan tier to its quotas and feature
// flags. Rows are seeded once and treated as read-only at runtime.
type PlanLimit struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	PlanType            string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"plan_type"`
	MaxListings         int       `gorm:"not null;default:1" json:"max_listings"`
	MaxImages           int       `gorm:"not null;default:3" json:"max_images"`
	HasAnalytics        bool      `gorm:"default:false" json:"has_analytics"`
	HasFeaturedBadge    bool      `gorm:"default:false" json:"has_featured_badge"`
	HasPrioritySupport  bool      `gorm:"default:false" json:"has_priority_support"`
	BoostDiscountPercent int      `gorm:"not null;default:0" json:"boost_discount_percent"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DefaultPlanLimits returns the seed rows for the plan catalog.
func DefaultPlanLimits() []PlanLimit {
	return []PlanLimit{
		{
			PlanType:    PlanBasic,
			MaxListings: 1,
			MaxImages:   3,
		},
		{
			PlanType:             PlanPremium,
			MaxListings:          5,
			MaxImages:            UnlimitedCount,
			HasAnalytics:         true,
			HasFeaturedBadge:     true,
			HasPrioritySupport:   true,
			BoostDiscountPercent: 10,
		},
		{
			PlanType:             PlanFeatured,
			MaxListings:          UnlimitedCount,
			MaxImages:            UnlimitedCount,
			HasAnalytics:         true,
			HasFeaturedBadge:     true,
			HasPrioritySupport:   true,
			BoostDiscountPercent: 20,
		},
	}
}

// AllowsMoreListings reports whether a user holding this plan may add another
// listing on top of currentCount. The check is strictly less-than: at exactly
// the limit no further listing is allowed.
func (p *PlanLimit) AllowsMoreListings(currentCount int) bool {
	if p.MaxListings == UnlimitedCount {
		return true
	}
	return currentCount < p.MaxListings
}
