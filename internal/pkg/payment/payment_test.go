package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/boost"
	"github.com/franhub/franhub/internal/pkg/entitlements"
)

type fakeSubs struct {
	active   *models.Subscription
	upserted []*models.Subscription
}

func (f *fakeSubs) GetActiveForUser(userID uint) (*models.Subscription, error) {
	return f.active, nil
}
func (f *fakeSubs) UpsertActive(sub *models.Subscription) error {
	f.upserted = append(f.upserted, sub)
	f.active = sub
	return nil
}
func (f *fakeSubs) ListByUser(userID uint) ([]models.Subscription, error) { return nil, nil }

type fakeLimits struct{}

func (f *fakeLimits) GetByPlanType(planType string) (*models.PlanLimit, error) {
	for _, l := range models.DefaultPlanLimits() {
		if l.PlanType == planType {
			limit := l
			return &limit, nil
		}
	}
	return nil, models.ErrListingNotFound
}
func (f *fakeLimits) GetAll() ([]models.PlanLimit, error) { return nil, nil }
func (f *fakeLimits) Seed() error                         { return nil }

type fakeListings struct {
	byID     map[uint]*models.Listing
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

func newSimulator(subs *fakeSubs, listings *fakeListings, orders *fakeOrders) *Simulator {
	resolver := entitlements.NewResolver(subs, &fakeLimits{}, listings)
	svc := boost.NewService(listings, orders)
	return NewSimulator(subs, svc, resolver).WithDelay(0)
}

func TestPlanPrice(t *testing.T) {
	tests := []struct {
		plan  string
		price int
	}{
		{models.PlanBasic, 0},
		{models.PlanPremium, 799},
		{models.PlanFeatured, 1999},
	}
	for _, tt := range tests {
		got, err := PlanPrice(tt.plan)
		require.NoError(t, err)
		assert.Equal(t, tt.price, got)
	}

	_, err := PlanPrice("platinum")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestSubscriptionCheckoutFlow(t *testing.T) {
	subs := &fakeSubs{}
	sim := newSimulator(subs, &fakeListings{}, &fakeOrders{})

	sess, err := sim.BeginSubscription(7, models.PlanPremium)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, StatusPending, sess.Status)
	assert.Equal(t, 799, sess.Amount)

	done, err := sim.Confirm(sess.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	require.Len(t, subs.upserted, 1)
	sub := subs.upserted[0]
	assert.Equal(t, models.PlanPremium, sub.PlanType)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, 799, sub.PricePaid)
	assert.WithinDuration(t, sub.CurrentPeriodStart.Add(SubscriptionPeriod), sub.CurrentPeriodEnd, time.Second)
}

func TestBasicPlanNeedsNoCheckout(t *testing.T) {
	sim := newSimulator(&fakeSubs{}, &fakeListings{}, &fakeOrders{})
	_, err := sim.BeginSubscription(7, models.PlanBasic)
	assert.ErrorIs(t, err, ErrFreePlanCheckout)
}

func TestBoostCheckoutAppliesPlanDiscount(t *testing.T) {
	now := time.Now()
	subs := &fakeSubs{active: &models.Subscription{
		UserID:             7,
		PlanType:           models.PlanPremium,
		Status:             models.SubscriptionStatusActive,
		CurrentPeriodStart: now.Add(-time.Hour),
		CurrentPeriodEnd:   now.Add(29 * 24 * time.Hour),
	}}
	listings := &fakeListings{byID: map[uint]*models.Listing{
		5: {ID: 5, UserID: 7, Name: "Tea Stand"},
	}}
	orders := &fakeOrders{}
	sim := newSimulator(subs, listings, orders)

	sess, err := sim.BeginBoost(7, 5, 14)
	require.NoError(t, err)
	assert.Equal(t, 314, sess.Amount) // 349 minus the premium 10% discount

	done, err := sim.Confirm(sess.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	require.Len(t, orders.created, 1)
	assert.Equal(t, 314, orders.created[0].AmountPaid)
	assert.Equal(t, sess.ID, orders.created[0].PaymentSessionID)
	assert.False(t, listings.boostEnd.IsZero())
}

func TestConfirmRejectsWrongUserAndDoubleSettle(t *testing.T) {
	subs := &fakeSubs{}
	sim := newSimulator(subs, &fakeListings{}, &fakeOrders{})

	sess, err := sim.BeginSubscription(7, models.PlanFeatured)
	require.NoError(t, err)

	_, err = sim.Confirm(sess.ID, 8)
	assert.ErrorIs(t, err, ErrSessionNotOwned)

	_, err = sim.Confirm(sess.ID, 7)
	require.NoError(t, err)

	_, err = sim.Confirm(sess.ID, 7)
	assert.ErrorIs(t, err, ErrSessionSettled)
	assert.Len(t, subs.upserted, 1)
}

func TestConfirmHonorsSettleDelay(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	subs := &fakeSubs{}
	resolver := entitlements.NewResolver(subs, &fakeLimits{}, &fakeListings{})
	sim := NewSimulator(subs, boost.NewService(&fakeListings{}, &fakeOrders{}), resolver).
		WithDelay(2 * time.Second).
		WithClock(func() time.Time { return current })

	sess, err := sim.BeginSubscription(7, models.PlanPremium)
	require.NoError(t, err)

	_, err = sim.Confirm(sess.ID, 7)
	assert.ErrorIs(t, err, ErrSessionNotReady)

	current = base.Add(3 * time.Second)
	done, err := sim.Confirm(sess.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)
}

func TestConfirmUnknownSession(t *testing.T) {
	sim := newSimulator(&fakeSubs{}, &fakeListings{}, &fakeOrders{})
	_, err := sim.Confirm("nope", 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBeginBoostUnknownDuration(t *testing.T) {
	sim := newSimulator(&fakeSubs{}, &fakeListings{}, &fakeOrders{})
	_, err := sim.BeginBoost(7, 5, 11)
	assert.ErrorIs(t, err, boost.ErrUnknownPackage)
}
