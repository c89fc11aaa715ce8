package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/franhub/franhub/internal/pkg/adrotation"
)

// HandleBannersAPI returns the rotation state for one ad slot: every loaded
// creative plus the index currently on display. Impressions are not recorded
// here; the poller calls the impression endpoint when it actually renders.
func HandleBannersAPI(c *fiber.Ctx) error {
	position := c.Params("position")
	engine := adrotation.GetManager().Engine(position)
	if engine == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "unknown banner position"})
	}

	creatives, index := engine.All()
	current := engine.Peek()

	return c.JSON(fiber.Map{
		"position":  position,
		"creatives": creatives,
		"current":   current,
		"index":     index,
		"paused":    engine.IsPaused(),
	})
}

// HandleBannerImpressionAPI records one impression for the creative currently
// shown in the slot. Fallback placeholders are never counted.
func HandleBannerImpressionAPI(c *fiber.Ctx) error {
	position := c.Params("position")
	engine := adrotation.GetManager().Engine(position)
	if engine == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "unknown banner position"})
	}

	creative := engine.Current()
	return c.JSON(fiber.Map{"recorded": !creative.IsFallback, "banner_id": creative.ID})
}

// HandleBannerClickAPI records a click on a creative. The banner id comes from
// the client because the rotation may have advanced between render and click.
func HandleBannerClickAPI(c *fiber.Ctx) error {
	position := c.Params("position")
	engine := adrotation.GetManager().Engine(position)
	if engine == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "unknown banner position"})
	}

	id, err := strconv.ParseUint(c.FormValue("banner_id", c.Query("banner_id")), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "banner_id missing"})
	}

	engine.Click(uint(id))
	return c.JSON(fiber.Map{"recorded": id != 0})
}
