package models

import "time"

const (
	BoostOrderStatusActive    = "active"
	BoostOrderStatusCompleted = "completed"
)

// BoostOrder is the audit record written when a paid boost is applied to a
// listing. The listing itself carries the live boost flag and end timestamp;
// orders are never updated to reflect expiry (expiry is evaluated lazily at
// read time).
type BoostOrder struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ListingID        uint      `gorm:"not null;index" json:"listing_id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	Days             int       `gorm:"not null" json:"days"`
	AmountPaid       int       `gorm:"not null" json:"amount_paid"`
	StartDate        time.Time `gorm:"type:timestamp;not null" json:"start_date"`
	EndDate          time.Time `gorm:"type:timestamp;not null" json:"end_date"`
	Status           string    `gorm:"type:varchar(32);not null;default:'active'" json:"status"`
	PaymentSessionID string    `gorm:"type:varchar(100);default:null" json:"payment_session_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}
