package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ContactStatusNew       = "new"
	ContactStatusContacted = "contacted"
	ContactStatusQuoted    = "quoted"
	ContactStatusClosed    = "closed"
	ContactStatusRejected  = "rejected"
)

// AdvertiserContact is a lead submitted through the public advertise form.
// Only the status field is mutated afterwards, by admin transitions.
type AdvertiserContact struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyName string    `gorm:"type:varchar(200);not null" json:"company_name" validate:"required,min=2,max=200"`
	ContactName string    `gorm:"type:varchar(150);not null" json:"contact_name" validate:"required,min=2,max=150"`
	Email       string    `gorm:"type:varchar(200);not null" json:"email" validate:"required,email"`
	Phone       string    `gorm:"type:varchar(50);default:null" json:"phone"`
	PackageKey  string    `gorm:"type:varchar(50);not null" json:"package_key" validate:"required"`
	Message     string    `gorm:"type:text" json:"message"`
	Status      string    `gorm:"type:varchar(32);not null;default:'new';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *AdvertiserContact) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// IsValidContactStatus reports whether status is a known lead state.
func IsValidContactStatus(status string) bool {
	switch status {
	case ContactStatusNew, ContactStatusContacted, ContactStatusQuoted, ContactStatusClosed, ContactStatusRejected:
		return true
	default:
		return false
	}
}
