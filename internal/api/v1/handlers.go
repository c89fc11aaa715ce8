package apiv1

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/franhub/franhub/app/controllers"
	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/ranking"
)

// Pong is the ping endpoint response.
type Pong struct {
	Ping string `json:"ping"`
}

// ListingResource wraps a listing with its computed ranking band.
type ListingResource struct {
	models.Listing
	Band string `json:"band"`
}

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches all v1 routes to the given group.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)
	r.Get("/listings", s.GetListings)
	r.Get("/listings/:id", s.GetListing)
	r.Get("/banners/:position", controllers.HandleBannersAPI)
	r.Post("/banners/:position/impression", controllers.HandleBannerImpressionAPI)
	r.Post("/banners/:position/click", controllers.HandleBannerClickAPI)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetListings returns ranked listings, optionally narrowed by category and
// free-text search. Same ordering as the public start page.
func (s *APIServer) GetListings(c *fiber.Ctx) error {
	q := repository.ListingQuery{
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit"),
	}
	if category := c.Query("category"); category != "" {
		if !models.IsValidCategory(category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "unknown category"})
		}
		q.Category = category
	}

	listings, err := repository.GetGlobalFactory().GetListingRepository().Query(q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal", "message": "failed to load listings"})
	}

	now := time.Now()
	ranked := ranking.Rank(listings, now)
	resources := make([]ListingResource, 0, len(ranked))
	for i := range ranked {
		resources = append(resources, ListingResource{
			Listing: ranked[i],
			Band:    ranking.Band(&ranked[i], now),
		})
	}

	return c.JSON(fiber.Map{"listings": resources, "count": len(resources)})
}

// GetListing returns a single listing resource by id.
func (s *APIServer) GetListing(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "id must be numeric"})
	}

	listing, err := repository.GetGlobalFactory().GetListingRepository().GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "listing not found"})
	}

	return c.JSON(ListingResource{
		Listing: *listing,
		Band:    ranking.Band(listing, time.Now()),
	})
}
