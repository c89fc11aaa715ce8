// Package payment implements the simulated checkout flow. Sessions are
// held in memory, settle after a short artificial delay, and on success
// write the purchased subscription or boost through the repositories.
// There is no real payment provider behind this.
package payment

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/boost"
	"github.com/franhub/franhub/internal/pkg/entitlements"
)

const (
	KindSubscription = "subscription"
	KindBoost        = "boost"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	// Subscriptions renew in fixed 30-day periods.
	SubscriptionPeriod = 30 * 24 * time.Hour

	// DefaultSettleDelay is how long a simulated charge "processes"
	// before it can be confirmed.
	DefaultSettleDelay = 2 * time.Second
)

// PlanPrice returns the monthly price for a paid plan in the smallest
// currency unit. The basic plan is free.
func PlanPrice(planType string) (int, error) {
	switch planType {
	case models.PlanPremium:
		return 799, nil
	case models.PlanFeatured:
		return 1999, nil
	case models.PlanBasic:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownPlan, planType)
	}
}

var (
	ErrUnknownPlan      = errors.New("payment: unknown plan type")
	ErrSessionNotFound  = errors.New("payment: checkout session not found")
	ErrSessionNotOwned  = errors.New("payment: checkout session belongs to another user")
	ErrSessionSettled   = errors.New("payment: checkout session already settled")
	ErrSessionNotReady  = errors.New("payment: checkout session is still processing")
	ErrFreePlanCheckout = errors.New("payment: the basic plan needs no checkout")
)

// Session is one simulated checkout. Exactly one of PlanType or
// ListingID/Days is set, depending on Kind.
type Session struct {
	ID        string
	UserID    uint
	Kind      string
	PlanType  string
	ListingID uint
	Days      int
	Amount    int
	Status    string
	CreatedAt time.Time
	readyAt   time.Time
}

var (
	globalSimulator *Simulator
	simulatorOnce   sync.Once
)

// GetSimulator returns the global checkout simulator (singleton).
func GetSimulator() *Simulator {
	simulatorOnce.Do(func() {
		repos := repository.GetGlobalRepositories()
		resolver := entitlements.NewResolver(repos.Subscription, repos.PlanLimit, repos.Listing)
		globalSimulator = NewSimulator(
			repos.Subscription,
			boost.NewService(repos.Listing, repos.BoostOrder),
			resolver,
		)
	})
	return globalSimulator
}

// Simulator creates and settles simulated checkout sessions.
type Simulator struct {
	subs     repository.SubscriptionRepository
	boosts   *boost.Service
	resolver *entitlements.Resolver

	delay time.Duration
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSimulator(subs repository.SubscriptionRepository, boosts *boost.Service, resolver *entitlements.Resolver) *Simulator {
	return &Simulator{
		subs:     subs,
		boosts:   boosts,
		resolver: resolver,
		delay:    DefaultSettleDelay,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// WithDelay overrides the artificial settle delay. Zero makes sessions
// confirmable immediately.
func (s *Simulator) WithDelay(d time.Duration) *Simulator {
	s.delay = d
	return s
}

// WithClock overrides the time source.
func (s *Simulator) WithClock(now func() time.Time) *Simulator {
	s.now = now
	return s
}

// BeginSubscription opens a checkout session for a paid plan.
func (s *Simulator) BeginSubscription(userID uint, planType string) (*Session, error) {
	price, err := PlanPrice(planType)
	if err != nil {
		return nil, err
	}
	if price == 0 {
		return nil, ErrFreePlanCheckout
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      KindSubscription,
		PlanType:  planType,
		Amount:    price,
		Status:    StatusPending,
		CreatedAt: now,
		readyAt:   now.Add(s.delay),
	}
	s.store(sess)
	return sess, nil
}

// BeginBoost opens a checkout session for a listing boost. The charged
// amount already includes the user's plan discount.
func (s *Simulator) BeginBoost(userID, listingID uint, days int) (*Session, error) {
	now := s.now()
	ent := s.resolver.Resolve(userID, now)
	price, err := boost.PriceFor(days, ent)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      KindBoost,
		ListingID: listingID,
		Days:      days,
		Amount:    price,
		Status:    StatusPending,
		CreatedAt: now,
		readyAt:   now.Add(s.delay),
	}
	s.store(sess)
	return sess, nil
}

// Get returns a session by ID.
func (s *Simulator) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

// Confirm settles a pending session and performs the purchase it
// represents. Confirming before the settle delay has elapsed fails with
// ErrSessionNotReady; confirming twice fails with ErrSessionSettled.
func (s *Simulator) Confirm(id string, userID uint) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if sess.UserID != userID {
		s.mu.Unlock()
		return nil, ErrSessionNotOwned
	}
	if sess.Status != StatusPending {
		s.mu.Unlock()
		return nil, ErrSessionSettled
	}
	now := s.now()
	if now.Before(sess.readyAt) {
		s.mu.Unlock()
		return nil, ErrSessionNotReady
	}
	// Mark settled before releasing the lock so a concurrent Confirm
	// cannot double-apply the purchase.
	sess.Status = StatusCompleted
	cp := *sess
	s.mu.Unlock()

	var err error
	switch cp.Kind {
	case KindSubscription:
		err = s.applySubscription(&cp, now)
	case KindBoost:
		_, err = s.boosts.Apply(cp.ListingID, cp.UserID, cp.Days, cp.Amount, cp.ID, now)
	}
	if err != nil {
		s.mu.Lock()
		sess.Status = StatusFailed
		s.mu.Unlock()
		cp.Status = StatusFailed
		return &cp, err
	}
	return &cp, nil
}

// applySubscription upserts the user's single active subscription to the
// purchased plan for one full period starting now.
func (s *Simulator) applySubscription(sess *Session, now time.Time) error {
	sub := &models.Subscription{
		UserID:             sess.UserID,
		PlanType:           sess.PlanType,
		Status:             models.SubscriptionStatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.Add(SubscriptionPeriod),
		PricePaid:          sess.Amount,
		PaymentMethod:      "simulated",
	}
	return s.subs.UpsertActive(sub)
}

func (s *Simulator) store(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
}
