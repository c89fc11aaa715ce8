// Package boost holds the paid-placement catalog and the write path that
// turns a completed boost payment into a live boost on a listing.
package boost

import (
	"errors"
	"fmt"
	"time"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/entitlements"
)

// Package is one purchasable boost duration.
type Package struct {
	Days  int
	Price int // smallest currency unit
	Label string
}

// Catalog returns the fixed boost packages, shortest first.
func Catalog() []Package {
	return []Package{
		{Days: 7, Price: 199, Label: "7 days"},
		{Days: 14, Price: 349, Label: "14 days"},
		{Days: 30, Price: 599, Label: "30 days"},
	}
}

var ErrUnknownPackage = errors.New("boost: unknown package duration")

// PackageFor returns the catalog entry for a duration in days.
func PackageFor(days int) (Package, error) {
	for _, p := range Catalog() {
		if p.Days == days {
			return p, nil
		}
	}
	return Package{}, fmt.Errorf("%w: %d days", ErrUnknownPackage, days)
}

// PriceFor returns the price of a boost duration after the entitlement's
// plan discount.
func PriceFor(days int, ent *entitlements.Entitlement) (int, error) {
	pkg, err := PackageFor(days)
	if err != nil {
		return 0, err
	}
	if ent == nil {
		return pkg.Price, nil
	}
	return ent.DiscountedPrice(pkg.Price), nil
}

// Service applies purchased boosts to listings.
type Service struct {
	listings repository.ListingRepository
	orders   repository.BoostOrderRepository
}

func NewService(listings repository.ListingRepository, orders repository.BoostOrderRepository) *Service {
	return &Service{listings: listings, orders: orders}
}

var ErrNotOwner = errors.New("boost: listing does not belong to user")

// Apply marks the listing as boosted until now+days and writes the audit
// order. The order price is the amount actually charged, discount included.
// Boosting an already-boosted listing restarts the window from now rather
// than stacking durations.
func (s *Service) Apply(listingID, userID uint, days, amountPaid int, sessionID string, now time.Time) (*models.BoostOrder, error) {
	if _, err := PackageFor(days); err != nil {
		return nil, err
	}

	listing, err := s.listings.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		return nil, ErrNotOwner
	}

	end := now.Add(time.Duration(days) * 24 * time.Hour)
	if err := s.listings.SetBoost(listingID, end); err != nil {
		return nil, err
	}

	order := &models.BoostOrder{
		ListingID:        listingID,
		UserID:           userID,
		Days:             days,
		AmountPaid:       amountPaid,
		StartDate:        now,
		EndDate:          end,
		Status:           models.BoostOrderStatusActive,
		PaymentSessionID: sessionID,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}
