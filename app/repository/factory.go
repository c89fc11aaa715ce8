package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetListingRepository returns the listing repository instance
func (f *Factory) GetListingRepository() ListingRepository {
	return f.GetRepositories().Listing
}

// GetSubscriptionRepository returns the subscription repository instance
func (f *Factory) GetSubscriptionRepository() SubscriptionRepository {
	return f.GetRepositories().Subscription
}

// GetPlanLimitRepository returns the plan limit repository instance
func (f *Factory) GetPlanLimitRepository() PlanLimitRepository {
	return f.GetRepositories().PlanLimit
}

// GetBannerAdRepository returns the banner ad repository instance
func (f *Factory) GetBannerAdRepository() BannerAdRepository {
	return f.GetRepositories().BannerAd
}

// GetAdvertiserContactRepository returns the advertiser contact repository instance
func (f *Factory) GetAdvertiserContactRepository() AdvertiserContactRepository {
	return f.GetRepositories().Contact
}

// GetBoostOrderRepository returns the boost order repository instance
func (f *Factory) GetBoostOrderRepository() BoostOrderRepository {
	return f.GetRepositories().BoostOrder
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance, nil
// when the factory has not been initialized yet.
func GetGlobalRepositories() *Repositories {
	if globalFactory == nil {
		return nil
	}
	return globalFactory.GetRepositories()
}
