package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	CategoryFood         = "food"
	CategoryBeverage     = "beverage"
	CategoryService      = "service"
	CategoryRetail       = "retail"
	CategoryEducation    = "education"
	CategoryHealthBeauty = "health_beauty"
)

// Categories lists every valid listing category in display order.
var Categories = []string{
	CategoryFood,
	CategoryBeverage,
	CategoryService,
	CategoryRetail,
	CategoryEducation,
	CategoryHealthBeauty,
}

// AvailableFeatures is the fixed set of feature tags a listing may carry.
var AvailableFeatures = []string{
	"income-guarantee",
	"free-training",
	"location-scouting",
	"support-team",
	"supply-included",
	"roi-under-1-year",
}

var (
	ErrContactRequired    = errors.New("at least one contact channel (phone or LINE ID) is required")
	ErrInvestmentRange    = errors.New("minimum investment must be less than maximum investment")
	ErrInvestmentNegative = errors.New("investment amounts must not be negative")
	ErrUnknownCategory    = errors.New("unknown listing category")
	ErrUnknownFeature     = errors.New("unknown feature tag")
	ErrListingNotFound    = errors.New("listing not found")
)

// FeatureList is a JSON-encoded string slice column.
type FeatureList []string

func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(f))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = FeatureList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for FeatureList: %T", value)
	}
	if len(data) == 0 {
		*f = FeatureList{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(f))
}

// Listing is a single franchise-for-sale posting.
type Listing struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	Name          string      `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Category      string      `gorm:"type:varchar(50);not null;index" json:"category" validate:"required"`
	InvestmentMin int         `gorm:"not null" json:"investment_min"`
	InvestmentMax int         `gorm:"not null" json:"investment_max"`
	Description   string      `gorm:"type:text;not null" json:"description" validate:"required"`
	Phone         string      `gorm:"type:varchar(50);default:null" json:"phone"`
	LineID        string      `gorm:"type:varchar(100);default:null" json:"line_id"`
	Location      string      `gorm:"type:varchar(200);default:null" json:"location"`
	Features      FeatureList `gorm:"type:json" json:"features"`
	ImageURL      string      `gorm:"type:varchar(255);default:null" json:"image_url"`
	ThumbnailURL  string      `gorm:"type:varchar(255);default:null" json:"thumbnail_url"`
	ViewCount     int64       `gorm:"default:0" json:"view_count"`
	IsBoosted     bool        `gorm:"default:false;index" json:"is_boosted"`
	BoostEndDate  *time.Time  `gorm:"type:timestamp;default:null" json:"boost_end_date,omitempty"`
	IsFeatured    bool        `gorm:"default:false;index" json:"is_featured"`
	CreatedAt     time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Validate enforces field tags plus the cross-field rules that apply to both
// the create and edit paths: a valid category, known feature tags, a
// non-negative investment range with min < max, and at least one contact
// channel.
func (l *Listing) Validate() error {
	v := validator.New()
	if err := v.Struct(l); err != nil {
		return err
	}
	if !IsValidCategory(l.Category) {
		return ErrUnknownCategory
	}
	if l.InvestmentMin < 0 || l.InvestmentMax < 0 {
		return ErrInvestmentNegative
	}
	if l.InvestmentMin >= l.InvestmentMax {
		return ErrInvestmentRange
	}
	if strings.TrimSpace(l.Phone) == "" && strings.TrimSpace(l.LineID) == "" {
		return ErrContactRequired
	}
	for _, feature := range l.Features {
		if !isKnownFeature(feature) {
			return fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
		}
	}
	return nil
}

// IsValidCategory reports whether the given category is one of the known set.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func isKnownFeature(feature string) bool {
	for _, f := range AvailableFeatures {
		if f == feature {
			return true
		}
	}
	return false
}

// HasActiveBoost reports whether the listing's boost is live at the given
// time. The stored IsBoosted flag is only a hint; the timestamp comparison is
// the ground truth, so a lapsed boost reads as inactive even while the flag
// still says true.
func (l *Listing) HasActiveBoost(now time.Time) bool {
	return l.IsBoosted && l.BoostEndDate != nil && l.BoostEndDate.After(now)
}

// Contact returns the preferred contact channel for display: phone first,
// LINE ID as fallback.
func (l *Listing) Contact() string {
	if strings.TrimSpace(l.Phone) != "" {
		return l.Phone
	}
	return l.LineID
}
