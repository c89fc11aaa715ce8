// Package ranking orders marketplace listings for public browse pages.
// Paid placement wins: listings with a live boost come first, then
// featured-plan listings, then everything else. Within each band the
// incoming order is preserved, so callers control the secondary sort
// (newest-first from the store).
package ranking

import (
	"time"

	"github.com/franhub/franhub/app/models"
)

// Rank returns listings reordered into boost/featured/rest bands. The
// boost check is evaluated against now, so a listing whose boost lapsed
// between writes drops out of the top band without any database update.
// The input slice is not modified.
func Rank(listings []models.Listing, now time.Time) []models.Listing {
	boosted := make([]models.Listing, 0, len(listings))
	featured := make([]models.Listing, 0)
	rest := make([]models.Listing, 0)

	for _, l := range listings {
		switch {
		case l.HasActiveBoost(now):
			boosted = append(boosted, l)
		case l.IsFeatured:
			featured = append(featured, l)
		default:
			rest = append(rest, l)
		}
	}

	out := boosted
	out = append(out, featured...)
	out = append(out, rest...)
	return out
}

// Band reports which placement band a listing falls into at a point in
// time. Used by templates to pick the right badge.
func Band(l *models.Listing, now time.Time) string {
	switch {
	case l.HasActiveBoost(now):
		return "boosted"
	case l.IsFeatured:
		return "featured"
	default:
		return "standard"
	}
}
