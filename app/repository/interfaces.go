package repository

import (
	"time"

	"github.com/franhub/franhub/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// ListingQuery narrows and orders a listing query. Zero values mean "no
// constraint"; Limit <= 0 means unlimited.
type ListingQuery struct {
	Category string
	Search   string
	Limit    int
}

// ListingRepository defines the interface for listing-related database
// operations. Update and Delete are always owner-scoped: a write whose owner
// filter does not match affects zero rows.
type ListingRepository interface {
	Create(listing *models.Listing) error
	GetByID(id uint) (*models.Listing, error)
	GetByUserID(userID uint) ([]models.Listing, error)
	Query(q ListingQuery) ([]models.Listing, error)
	GetRelated(category string, excludeID uint, limit int) ([]models.Listing, error)
	Update(listing *models.Listing, ownerID uint) (int64, error)
	Delete(id uint, ownerID uint) (int64, error)
	CountByUserID(userID uint) (int64, error)
	Count() (int64, error)
	IncrementViewCount(id uint, delta int64) error
	SetBoost(id uint, endDate time.Time) error
	ClearExpiredBoostFlags(now time.Time) (int64, error)
	SetFeatured(id uint, featured bool) error
	SumViewsByUserID(userID uint) (int64, error)
}

// SubscriptionRepository defines the interface for subscription persistence.
// UpsertActive keeps the single-active-row invariant: it updates the user's
// active subscription when one exists and inserts otherwise.
type SubscriptionRepository interface {
	GetActiveForUser(userID uint) (*models.Subscription, error)
	UpsertActive(sub *models.Subscription) error
	ListByUser(userID uint) ([]models.Subscription, error)
}

// PlanLimitRepository is the read-only plan catalog lookup.
type PlanLimitRepository interface {
	GetByPlanType(planType string) (*models.PlanLimit, error)
	GetAll() ([]models.PlanLimit, error)
	Seed() error
}

// BannerAdRepository defines the interface for banner ad operations. Writes
// are admin-only; the policy is enforced at the route level.
type BannerAdRepository interface {
	Create(banner *models.BannerAd) error
	GetByID(id uint) (*models.BannerAd, error)
	GetAll() ([]models.BannerAd, error)
	GetServableByPosition(position string, now time.Time) ([]models.BannerAd, error)
	Update(banner *models.BannerAd) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	IncrementImpressions(id uint, delta int64) error
	IncrementClicks(id uint, delta int64) error
}

// AdvertiserContactRepository defines the interface for advertiser leads.
type AdvertiserContactRepository interface {
	Create(contact *models.AdvertiserContact) error
	GetByID(id uint) (*models.AdvertiserContact, error)
	GetAll() ([]models.AdvertiserContact, error)
	UpdateStatus(id uint, status string) error
	CountByStatus(status string) (int64, error)
}

// BoostOrderRepository defines the interface for boost purchase records.
type BoostOrderRepository interface {
	Create(order *models.BoostOrder) error
	GetByListingID(listingID uint) ([]models.BoostOrder, error)
	GetByUserID(userID uint) ([]models.BoostOrder, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Listing      ListingRepository
	Subscription SubscriptionRepository
	PlanLimit    PlanLimitRepository
	BannerAd     BannerAdRepository
	Contact      AdvertiserContactRepository
	BoostOrder   BoostOrderRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Listing:      NewListingRepository(db),
		Subscription: NewSubscriptionRepository(db),
		PlanLimit:    NewPlanLimitRepository(db),
		BannerAd:     NewBannerAdRepository(db),
		Contact:      NewAdvertiserContactRepository(db),
		BoostOrder:   NewBoostOrderRepository(db),
	}
}
