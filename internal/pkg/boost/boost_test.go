package boost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/entitlements"
)

type fakeListings struct {
	byID     map[uint]*models.Listing
	boostID  uint
	boostEnd time.Time
}

func (f *fakeListings) Create(l *models.Listing) error { return nil }
func (f *fakeListings) GetByID(id uint) (*models.Listing, error) {
	if l, ok := f.byID[id]; ok {
		return l, nil
	}
	return nil, models.ErrListingNotFound
}
func (f *fakeListings) GetByUserID(id uint) ([]models.Listing, error) { return nil, nil }
func (f *fakeListings) Query(q repository.ListingQuery) ([]models.Listing, error) {
	return nil, nil
}
func (f *fakeListings) GetRelated(category string, excludeID uint, limit int) ([]models.Listing, error) {
	return nil, nil
}
func (f *fakeListings) Update(l *models.Listing, ownerID uint) (int64, error) { return 0, nil }
func (f *fakeListings) Delete(id uint, ownerID uint) (int64, error)           { return 0, nil }
func (f *fakeListings) CountByUserID(userID uint) (int64, error)              { return 0, nil }
func (f *fakeListings) Count() (int64, error)                                 { return 0, nil }
func (f *fakeListings) IncrementViewCount(id uint, delta int64) error         { return nil }
func (f *fakeListings) SetBoost(id uint, endDate time.Time) error {
	f.boostID = id
	f.boostEnd = endDate
	return nil
}
func (f *fakeListings) SetFeatured(id uint, featured bool) error    { return nil }
func (f *fakeListings) ClearExpiredBoostFlags(now time.Time) (int64, error) { return 0, nil }
func (f *fakeListings) SumViewsByUserID(userID uint) (int64, error) { return 0, nil }

type fakeOrders struct {
	created []*models.BoostOrder
}

func (f *fakeOrders) Create(o *models.BoostOrder) error { f.created = append(f.created, o); return nil }
func (f *fakeOrders) GetByListingID(id uint) ([]models.BoostOrder, error) { return nil, nil }
func (f *fakeOrders) GetByUserID(id uint) ([]models.BoostOrder, error)    { return nil, nil }

func TestCatalogDurationsAndPrices(t *testing.T) {
	tests := []struct {
		days  int
		price int
	}{
		{7, 199},
		{14, 349},
		{30, 599},
	}

	for _, tt := range tests {
		pkg, err := PackageFor(tt.days)
		require.NoError(t, err)
		assert.Equal(t, tt.price, pkg.Price)
	}

	_, err := PackageFor(10)
	assert.ErrorIs(t, err, ErrUnknownPackage)
}

func TestPriceForAppliesPlanDiscount(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		discount int
		want     int
	}{
		{"basic pays list price", 14, 0, 349},
		{"premium ten percent", 14, 10, 314},
		{"featured twenty percent", 30, 20, 479},
		{"featured week", 7, 20, 159},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ent := &entitlements.Entitlement{BoostDiscountPercent: tt.discount}
			got, err := PriceFor(tt.days, ent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceForNilEntitlement(t *testing.T) {
	got, err := PriceFor(7, nil)
	require.NoError(t, err)
	assert.Equal(t, 199, got)
}

func TestApplyWritesBoostAndOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	listings := &fakeListings{byID: map[uint]*models.Listing{
		42: {ID: 42, UserID: 7, Name: "Noodle Bar"},
	}}
	orders := &fakeOrders{}
	svc := NewService(listings, orders)

	order, err := svc.Apply(42, 7, 14, 314, "sess-abc", now)
	require.NoError(t, err)

	wantEnd := now.Add(14 * 24 * time.Hour)
	assert.Equal(t, uint(42), listings.boostID)
	assert.Equal(t, wantEnd, listings.boostEnd)

	require.Len(t, orders.created, 1)
	assert.Equal(t, uint(42), order.ListingID)
	assert.Equal(t, uint(7), order.UserID)
	assert.Equal(t, 14, order.Days)
	assert.Equal(t, 314, order.AmountPaid)
	assert.Equal(t, wantEnd, order.EndDate)
	assert.Equal(t, models.BoostOrderStatusActive, order.Status)
	assert.Equal(t, "sess-abc", order.PaymentSessionID)
}

func TestApplyRejectsForeignListing(t *testing.T) {
	now := time.Now()
	listings := &fakeListings{byID: map[uint]*models.Listing{
		42: {ID: 42, UserID: 7},
	}}
	orders := &fakeOrders{}
	svc := NewService(listings, orders)

	_, err := svc.Apply(42, 99, 7, 199, "sess", now)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Empty(t, orders.created)
}

func TestApplyRejectsUnknownDuration(t *testing.T) {
	svc := NewService(&fakeListings{}, &fakeOrders{})
	_, err := svc.Apply(1, 1, 3, 99, "sess", time.Now())
	assert.ErrorIs(t, err, ErrUnknownPackage)
}
