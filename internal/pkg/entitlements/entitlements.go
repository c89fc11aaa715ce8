package entitlements

import (
	"math"
	"time"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
)

// Entitlement is the resolved set of capabilities for one user at one
// point in time. It combines the user's effective plan with the limits
// configured for that plan and the user's current listing count.
type Entitlement struct {
	PlanType             string
	MaxListings          int
	MaxImagesPerListing  int
	HasAnalytics         bool
	HasFeaturedBadge     bool
	HasPrioritySupport   bool
	BoostDiscountPercent int
	ListingCount         int
}

// CanAddListing reports whether the user may create one more listing.
func (e *Entitlement) CanAddListing() bool {
	if e.MaxListings == models.UnlimitedCount {
		return true
	}
	return e.ListingCount < e.MaxListings
}

// AllowsUnlimitedImages reports whether listings under this entitlement
// may carry any number of images.
func (e *Entitlement) AllowsUnlimitedImages() bool {
	return e.MaxImagesPerListing == models.UnlimitedCount
}

// DiscountedPrice applies the plan's boost discount to a price in the
// smallest currency unit, rounding to the nearest whole unit.
func (e *Entitlement) DiscountedPrice(base int) int {
	if e.BoostDiscountPercent <= 0 {
		return base
	}
	return int(math.Round(float64(base) * (100 - float64(e.BoostDiscountPercent)) / 100))
}

// Resolver computes entitlements from subscription and plan-limit state.
type Resolver struct {
	subs     repository.SubscriptionRepository
	limits   repository.PlanLimitRepository
	listings repository.ListingRepository
}

func NewResolver(subs repository.SubscriptionRepository, limits repository.PlanLimitRepository, listings repository.ListingRepository) *Resolver {
	return &Resolver{subs: subs, limits: limits, listings: listings}
}

// EffectivePlan returns the user's plan as of now. A user with no
// active, unexpired subscription is on the basic plan.
func (r *Resolver) EffectivePlan(userID uint, now time.Time) string {
	sub, err := r.subs.GetActiveForUser(userID)
	if err != nil || sub == nil || !sub.IsCurrentlyActive(now) {
		return models.PlanBasic
	}
	return sub.PlanType
}

// Resolve computes the full entitlement for a user. Missing plan-limit
// rows fall back to the most restrictive defaults so a misconfigured
// plans table can never grant more than the basic tier.
func (r *Resolver) Resolve(userID uint, now time.Time) *Entitlement {
	plan := r.EffectivePlan(userID, now)

	ent := &Entitlement{
		PlanType:             plan,
		MaxListings:          1,
		MaxImagesPerListing:  3,
		BoostDiscountPercent: 0,
	}

	if limit, err := r.limits.GetByPlanType(plan); err == nil && limit != nil {
		ent.MaxListings = limit.MaxListings
		ent.MaxImagesPerListing = limit.MaxImages
		ent.HasAnalytics = limit.HasAnalytics
		ent.HasFeaturedBadge = limit.HasFeaturedBadge
		ent.HasPrioritySupport = limit.HasPrioritySupport
		ent.BoostDiscountPercent = limit.BoostDiscountPercent
	}

	if count, err := r.listings.CountByUserID(userID); err == nil {
		ent.ListingCount = int(count)
	}

	return ent
}
