package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/ranking"
	"github.com/franhub/franhub/internal/pkg/usercontext"
	"github.com/franhub/franhub/internal/pkg/utils"
)

// HandleUserListings renders the owner dashboard: the user's listings
// with their placement bands, plan entitlements and view totals.
func HandleUserListings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	listings, err := repos.Listing.GetByUserID(userCtx.UserID)
	if err != nil {
		log.Errorf("dashboard: listings for user %d failed: %v", userCtx.UserID, err)
	}

	now := time.Now()
	bands := make([]string, len(listings))
	for i := range listings {
		bands[i] = ranking.Band(&listings[i], now)
	}

	ent := listingResolver().Resolve(userCtx.UserID, now)

	data := fiber.Map{
		"PageTitle":   "My listings",
		"Listings":    listings,
		"Bands":       bands,
		"Entitlement": ent,
		"CanAddMore":  ent.CanAddListing(),
	}

	if user, err := repos.User.GetByID(userCtx.UserID); err == nil {
		data["AvatarURL"] = utils.GetGravatarURL(user.Email, 80)
	}

	// View analytics are a paid-plan feature.
	if ent.HasAnalytics {
		totalViews, err := repos.Listing.SumViewsByUserID(userCtx.UserID)
		if err != nil {
			log.Errorf("dashboard: view sum for user %d failed: %v", userCtx.UserID, err)
		}
		data["TotalViews"] = totalViews
		data["ShowAnalytics"] = true
	}

	if sub, err := repos.Subscription.GetActiveForUser(userCtx.UserID); err == nil && sub != nil && sub.IsCurrentlyActive(now) {
		data["Subscription"] = sub
	}

	if orders, err := repos.BoostOrder.GetByUserID(userCtx.UserID); err == nil {
		data["BoostOrders"] = orders
	}

	return c.Render("dashboard", viewContext(c, data), "layouts/main")
}
