package models

import "time"

const (
	PlanBasic    = "basic"
	PlanPremium  = "premium"
	PlanFeatured = "featured"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
)

// Subscription is a user's paid plan state. At most one row per user carries
// status=active; resolving a new purchase while one is active updates the
// existing row instead of inserting a second. Rows are superseded, never
// deleted.
type Subscription struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;index:idx_subscriptions_user_status,priority:1" json:"user_id"`
	PlanType           string    `gorm:"type:varchar(50);not null;default:'basic'" json:"plan_type"`
	Status             string    `gorm:"type:varchar(32);not null;default:'active';index:idx_subscriptions_user_status,priority:2" json:"status"`
	CurrentPeriodStart time.Time `gorm:"type:timestamp;not null" json:"current_period_start"`
	CurrentPeriodEnd   time.Time `gorm:"type:timestamp;not null" json:"current_period_end"`
	PricePaid          int       `gorm:"not null;default:0" json:"price_paid"`
	PaymentMethod      string    `gorm:"type:varchar(50);default:null" json:"payment_method"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsCurrentlyActive reports whether the subscription is active and its period
// has not lapsed at the given time.
func (s *Subscription) IsCurrentlyActive(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.CurrentPeriodEnd.After(now)
}

// IsValidPlanType reports whether the given plan name is one of the known tiers.
func IsValidPlanType(plan string) bool {
	switch plan {
	case PlanBasic, PlanPremium, PlanFeatured:
		return true
	default:
		return false
	}
}
