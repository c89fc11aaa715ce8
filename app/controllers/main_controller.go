package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/adrotation"
	metrics "github.com/franhub/franhub/internal/pkg/metrics/counter"
	"github.com/franhub/franhub/internal/pkg/ranking"
	"github.com/franhub/franhub/internal/pkg/statistics"
)

const relatedListingsLimit = 4

// HandleStart renders the marketplace home page: ranked listings with
// optional category and search filters, marketplace totals and the ad
// slots.
func HandleStart(c *fiber.Ctx) error {
	category := c.Query("category")
	search := c.Query("q")
	if category != "" && !models.IsValidCategory(category) {
		category = ""
	}

	listings, err := repository.GetGlobalRepositories().Listing.Query(repository.ListingQuery{
		Category: category,
		Search:   search,
	})
	if err != nil {
		log.Errorf("home: listing query failed: %v", err)
		listings = nil
	}

	now := time.Now()
	ranked := ranking.Rank(listings, now)

	bands := make([]string, len(ranked))
	for i := range ranked {
		bands[i] = ranking.Band(&ranked[i], now)
	}

	stats := statistics.GetStatisticsData()

	return c.Render("home", viewContext(c, fiber.Map{
		"PageTitle":     "Find your franchise",
		"Listings":      ranked,
		"Bands":         bands,
		"Categories":    models.Categories,
		"Category":      category,
		"Search":        search,
		"TotalListings": stats.TotalListings,
		"TotalUsers":    stats.TotalUsers,
		// Peek keeps the render path impression-free; the rotation script
		// reports the impression once the slot is actually shown.
		"HeaderAd":  adrotation.GetManager().Engine(models.BannerPositionHeader).Peek(),
		"SidebarAd": adrotation.GetManager().Engine(models.BannerPositionSidebar).Peek(),
		"FooterAd":  adrotation.GetManager().Engine(models.BannerPositionFooter).Peek(),
	}), "layouts/main")
}

// HandleListingView renders one listing's detail page, counts the view
// and shows related listings from the same category.
func HandleListingView(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return flash.WithInfo(c, fiber.Map{"type": "info", "message": "That listing does not exist."}).Redirect("/")
	}

	listing, err := repository.GetGlobalRepositories().Listing.GetByID(uint(id))
	if err != nil {
		return flash.WithInfo(c, fiber.Map{"type": "info", "message": "That listing does not exist."}).Redirect("/")
	}

	// Views are buffered in Redis and flushed to the DB in batches.
	if err := metrics.AddListingView(listing.ID); err != nil {
		log.Debugf("listing %d: view count buffering failed: %v", listing.ID, err)
	}

	related, err := repository.GetGlobalRepositories().Listing.GetRelated(listing.Category, listing.ID, relatedListingsLimit)
	if err != nil {
		log.Errorf("listing %d: related lookup failed: %v", listing.ID, err)
	}

	now := time.Now()
	return c.Render("listing_detail", viewContext(c, fiber.Map{
		"PageTitle":  listing.Name,
		"Listing":    listing,
		"Band":       ranking.Band(listing, now),
		"Related":    related,
		"Contact":    listing.Contact(),
		"InlineAd":   adrotation.GetManager().Engine(models.BannerPositionInline).Peek(),
	}), "layouts/main")
}

// HandleDocsAPI renders the API documentation page.
func HandleDocsAPI(c *fiber.Ctx) error {
	return c.Render("docs_api", viewContext(c, fiber.Map{
		"PageTitle": "API documentation",
	}), "layouts/main")
}

// HandleNotFound is the catch-all for routes no router claimed.
func HandleNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", viewContext(c, fiber.Map{
		"PageTitle": "Page not found",
	}), "layouts/main")
}
