package entitlements

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
)

type fakeSubRepo struct {
	sub *models.Subscription
	err error
}

func (f *fakeSubRepo) GetActiveForUser(userID uint) (*models.Subscription, error) {
	return f.sub, f.err
}
func (f *fakeSubRepo) UpsertActive(sub *models.Subscription) error { return nil }
func (f *fakeSubRepo) ListByUser(userID uint) ([]models.Subscription, error) {
	return nil, nil
}

type fakeLimitRepo struct {
	limits map[string]*models.PlanLimit
}

func newFakeLimitRepo() *fakeLimitRepo {
	repo := &fakeLimitRepo{limits: map[string]*models.PlanLimit{}}
	for _, l := range models.DefaultPlanLimits() {
		limit := l
		repo.limits[l.PlanType] = &limit
	}
	return repo
}

func (f *fakeLimitRepo) GetByPlanType(planType string) (*models.PlanLimit, error) {
	if l, ok := f.limits[planType]; ok {
		return l, nil
	}
	return nil, errors.New("plan limit not found")
}
func (f *fakeLimitRepo) GetAll() ([]models.PlanLimit, error) { return nil, nil }
func (f *fakeLimitRepo) Seed() error                         { return nil }

type fakeListingCounter struct {
	count int64
}

func (f *fakeListingCounter) Create(l *models.Listing) error           { return nil }
func (f *fakeListingCounter) GetByID(id uint) (*models.Listing, error) { return nil, nil }
func (f *fakeListingCounter) GetByUserID(id uint) ([]models.Listing, error) {
	return nil, nil
}
func (f *fakeListingCounter) Query(q repository.ListingQuery) ([]models.Listing, error) {
	return nil, nil
}
func (f *fakeListingCounter) GetRelated(category string, excludeID uint, limit int) ([]models.Listing, error) {
	return nil, nil
}
func (f *fakeListingCounter) Update(l *models.Listing, ownerID uint) (int64, error) { return 0, nil }
func (f *fakeListingCounter) Delete(id uint, ownerID uint) (int64, error)           { return 0, nil }
func (f *fakeListingCounter) CountByUserID(userID uint) (int64, error)              { return f.count, nil }
func (f *fakeListingCounter) Count() (int64, error)                                 { return f.count, nil }
func (f *fakeListingCounter) IncrementViewCount(id uint, delta int64) error         { return nil }
func (f *fakeListingCounter) SetBoost(id uint, endDate time.Time) error             { return nil }
func (f *fakeListingCounter) SetFeatured(id uint, featured bool) error              { return nil }
func (f *fakeListingCounter) ClearExpiredBoostFlags(now time.Time) (int64, error)   { return 0, nil }
func (f *fakeListingCounter) SumViewsByUserID(userID uint) (int64, error)           { return 0, nil }

func activeSub(plan string, now time.Time) *models.Subscription {
	return &models.Subscription{
		UserID:             1,
		PlanType:           plan,
		Status:             models.SubscriptionStatusActive,
		CurrentPeriodStart: now.Add(-24 * time.Hour),
		CurrentPeriodEnd:   now.Add(30 * 24 * time.Hour),
	}
}

func TestEffectivePlanDefaultsToBasic(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		sub  *models.Subscription
		err  error
		want string
	}{
		{name: "no subscription", want: models.PlanBasic},
		{name: "lookup error", err: errors.New("db down"), want: models.PlanBasic},
		{name: "active premium", sub: activeSub(models.PlanPremium, now), want: models.PlanPremium},
		{name: "active featured", sub: activeSub(models.PlanFeatured, now), want: models.PlanFeatured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&fakeSubRepo{sub: tt.sub, err: tt.err}, newFakeLimitRepo(), &fakeListingCounter{})
			assert.Equal(t, tt.want, r.EffectivePlan(1, now))
		})
	}
}

func TestEffectivePlanIgnoresExpiredSubscription(t *testing.T) {
	now := time.Now()
	sub := &models.Subscription{
		UserID:             1,
		PlanType:           models.PlanPremium,
		Status:             models.SubscriptionStatusActive,
		CurrentPeriodStart: now.Add(-31 * 24 * time.Hour),
		CurrentPeriodEnd:   now.Add(-time.Hour),
	}

	r := NewResolver(&fakeSubRepo{sub: sub}, newFakeLimitRepo(), &fakeListingCounter{})
	assert.Equal(t, models.PlanBasic, r.EffectivePlan(1, now))
}

func TestResolveCombinesPlanLimitsAndListingCount(t *testing.T) {
	now := time.Now()

	r := NewResolver(
		&fakeSubRepo{sub: activeSub(models.PlanPremium, now)},
		newFakeLimitRepo(),
		&fakeListingCounter{count: 3},
	)

	ent := r.Resolve(1, now)
	assert.Equal(t, models.PlanPremium, ent.PlanType)
	assert.Equal(t, 5, ent.MaxListings)
	assert.Equal(t, models.UnlimitedCount, ent.MaxImagesPerListing)
	assert.True(t, ent.AllowsUnlimitedImages())
	assert.Equal(t, 10, ent.BoostDiscountPercent)
	assert.Equal(t, 3, ent.ListingCount)
	assert.True(t, ent.CanAddListing())
}

func TestResolveFallsBackToRestrictiveDefaults(t *testing.T) {
	now := time.Now()

	// Empty plan catalog: resolver keeps the hard floor.
	r := NewResolver(
		&fakeSubRepo{sub: activeSub(models.PlanPremium, now)},
		&fakeLimitRepo{limits: map[string]*models.PlanLimit{}},
		&fakeListingCounter{count: 1},
	)

	ent := r.Resolve(1, now)
	assert.Equal(t, models.PlanPremium, ent.PlanType)
	assert.Equal(t, 1, ent.MaxListings)
	assert.Equal(t, 3, ent.MaxImagesPerListing)
	assert.Equal(t, 0, ent.BoostDiscountPercent)
	assert.False(t, ent.CanAddListing())
}

func TestCanAddListingBoundary(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		current int
		want    bool
	}{
		{"below limit", 5, 4, true},
		{"at limit", 5, 5, false},
		{"over limit", 1, 3, false},
		{"unlimited", models.UnlimitedCount, 10000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entitlement{MaxListings: tt.max, ListingCount: tt.current}
			assert.Equal(t, tt.want, e.CanAddListing())
		})
	}
}

func TestDiscountedPriceRoundsToNearest(t *testing.T) {
	tests := []struct {
		name     string
		discount int
		base     int
		want     int
	}{
		{"no discount", 0, 349, 349},
		{"ten percent", 10, 349, 314},
		{"ten percent even", 10, 199, 179},
		{"twenty percent", 20, 599, 479},
		{"twenty percent rounds up", 20, 349, 279},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entitlement{BoostDiscountPercent: tt.discount}
			assert.Equal(t, tt.want, e.DiscountedPrice(tt.base))
		})
	}
}
