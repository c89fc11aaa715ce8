package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/adrotation"
)

// AdminController handles admin-related HTTP requests using repository pattern
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

var adminController *AdminController

// InitializeAdminController sets up the admin controller with global repositories
func InitializeAdminController() {
	adminController = NewAdminController(repository.GetGlobalRepositories())
}

// GetAdminController returns the initialized admin controller
func GetAdminController() *AdminController {
	return adminController
}

func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Errorf("%s: %v", message, err)
	return flash.WithError(c, fiber.Map{"type": "error", "message": message}).Redirect("/admin")
}

// HandleDashboard renders the admin dashboard with marketplace totals
// and the advertising pipeline.
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	totalUsers, err := ac.repos.User.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get user count", err)
	}

	totalListings, err := ac.repos.Listing.Count()
	if err != nil {
		return ac.handleError(c, "Failed to get listing count", err)
	}

	banners, err := ac.repos.BannerAd.GetAll()
	if err != nil {
		return ac.handleError(c, "Failed to load banners", err)
	}

	now := time.Now()
	activeBanners := 0
	for i := range banners {
		if banners[i].IsServable(now) {
			activeBanners++
		}
	}

	newLeads, err := ac.repos.Contact.CountByStatus(models.ContactStatusNew)
	if err != nil {
		log.Errorf("Failed to count new leads: %v", err)
	}

	return c.Render("admin/dashboard", viewContext(c, fiber.Map{
		"PageTitle":     "Admin dashboard",
		"TotalUsers":    totalUsers,
		"TotalListings": totalListings,
		"TotalBanners":  len(banners),
		"ActiveBanners": activeBanners,
		"NewLeads":      newLeads,
	}), "layouts/admin")
}

// HandleBanners renders the banner management list with CTR analytics.
func (ac *AdminController) HandleBanners(c *fiber.Ctx) error {
	banners, err := ac.repos.BannerAd.GetAll()
	if err != nil {
		return ac.handleError(c, "Failed to load banners", err)
	}

	now := time.Now()
	rows := make([]fiber.Map, 0, len(banners))
	for i := range banners {
		b := banners[i]
		rows = append(rows, fiber.Map{
			"Banner":   b,
			"CTR":      b.CTR(),
			"Servable": b.IsServable(now),
			"Expired":  b.IsExpired(now),
		})
	}

	return c.Render("admin/banners", viewContext(c, fiber.Map{
		"PageTitle": "Banner ads",
		"Rows":      rows,
		"Positions": models.BannerPositions,
	}), "layouts/admin")
}

// HandleBannerCreate renders the create form and stores new banners.
func (ac *AdminController) HandleBannerCreate(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		banner, err := bannerFromForm(c)
		if err != nil {
			return flash.WithError(c, fiber.Map{"type": "error", "message": err.Error()}).Redirect("/admin/banners/create")
		}

		if err := ac.repos.BannerAd.Create(banner); err != nil {
			return ac.handleError(c, "Failed to create banner", err)
		}

		adrotation.GetManager().ReloadAll()
		return flash.WithSuccess(c, fiber.Map{"type": "success", "message": "Banner created."}).Redirect("/admin/banners")
	}

	return c.Render("admin/banner_form", viewContext(c, fiber.Map{
		"PageTitle":  "New banner",
		"Positions":  models.BannerPositions,
		"Statuses":   []string{models.BannerStatusPending, models.BannerStatusActive, models.BannerStatusPaused, models.BannerStatusCompleted},
		"FormAction": "/admin/banners/create",
	}), "layouts/admin")
}

// HandleBannerEdit renders the edit form and applies updates.
func (ac *AdminController) HandleBannerEdit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/banners", fiber.StatusSeeOther)
	}

	banner, err := ac.repos.BannerAd.GetByID(uint(id))
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Banner not found"}).Redirect("/admin/banners")
	}

	if c.Method() == fiber.MethodPost {
		updated, err := bannerFromForm(c)
		if err != nil {
			return flash.WithError(c, fiber.Map{"type": "error", "message": err.Error()}).Redirect(c.Path())
		}
		updated.ID = banner.ID
		updated.Impressions = banner.Impressions
		updated.Clicks = banner.Clicks

		if err := ac.repos.BannerAd.Update(updated); err != nil {
			return ac.handleError(c, "Failed to update banner", err)
		}

		adrotation.GetManager().ReloadAll()
		return flash.WithSuccess(c, fiber.Map{"type": "success", "message": "Banner updated."}).Redirect("/admin/banners")
	}

	return c.Render("admin/banner_form", viewContext(c, fiber.Map{
		"PageTitle":  "Edit banner",
		"Banner":     banner,
		"Positions":  models.BannerPositions,
		"Statuses":   []string{models.BannerStatusPending, models.BannerStatusActive, models.BannerStatusPaused, models.BannerStatusCompleted},
		"FormAction": c.Path(),
	}), "layouts/admin")
}

// HandleBannerStatus switches a banner's lifecycle state.
func (ac *AdminController) HandleBannerStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/banners", fiber.StatusSeeOther)
	}

	status := c.FormValue("status")
	if !models.IsValidBannerStatus(status) {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Unknown banner status"}).Redirect("/admin/banners")
	}

	if err := ac.repos.BannerAd.UpdateStatus(uint(id), status); err != nil {
		return ac.handleError(c, "Failed to update banner status", err)
	}

	adrotation.GetManager().ReloadAll()
	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": "Banner status updated."}).Redirect("/admin/banners")
}

// HandleBannerDelete removes a banner.
func (ac *AdminController) HandleBannerDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/banners", fiber.StatusSeeOther)
	}

	if err := ac.repos.BannerAd.Delete(uint(id)); err != nil {
		return ac.handleError(c, "Failed to delete banner", err)
	}

	adrotation.GetManager().ReloadAll()
	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": "Banner deleted."}).Redirect("/admin/banners")
}

// HandleContacts renders the advertiser lead pipeline.
func (ac *AdminController) HandleContacts(c *fiber.Ctx) error {
	contacts, err := ac.repos.Contact.GetAll()
	if err != nil {
		return ac.handleError(c, "Failed to load advertiser contacts", err)
	}

	return c.Render("admin/contacts", viewContext(c, fiber.Map{
		"PageTitle": "Advertiser leads",
		"Contacts":  contacts,
		"Statuses":  []string{models.ContactStatusNew, models.ContactStatusContacted, models.ContactStatusQuoted, models.ContactStatusClosed, models.ContactStatusRejected},
	}), "layouts/admin")
}

// HandleContactStatus moves a lead through the pipeline.
func (ac *AdminController) HandleContactStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/admin/contacts", fiber.StatusSeeOther)
	}

	status := c.FormValue("status")
	if !models.IsValidContactStatus(status) {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Unknown lead status"}).Redirect("/admin/contacts")
	}

	if err := ac.repos.Contact.UpdateStatus(uint(id), status); err != nil {
		return ac.handleError(c, "Failed to update lead status", err)
	}

	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": "Lead updated."}).Redirect("/admin/contacts")
}

// bannerFromForm builds and validates a banner from the submitted form.
func bannerFromForm(c *fiber.Ctx) (*models.BannerAd, error) {
	position := c.FormValue("position")
	if !models.IsValidBannerPosition(position) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown banner position")
	}
	status := c.FormValue("status", models.BannerStatusPending)
	if !models.IsValidBannerStatus(status) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown banner status")
	}

	brand := strings.TrimSpace(c.FormValue("brand_name"))
	title := strings.TrimSpace(c.FormValue("title"))
	if brand == "" || title == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "brand name and title are required")
	}

	priority, _ := strconv.Atoi(c.FormValue("priority", "0"))
	pricePaid, _ := strconv.Atoi(c.FormValue("price_paid", "0"))

	banner := &models.BannerAd{
		Position:        position,
		BrandName:       brand,
		Title:           title,
		Description:     strings.TrimSpace(c.FormValue("description")),
		ImageURL:        strings.TrimSpace(c.FormValue("image_url")),
		LinkURL:         strings.TrimSpace(c.FormValue("link_url")),
		CTAText:         strings.TrimSpace(c.FormValue("cta_text")),
		BackgroundColor: strings.TrimSpace(c.FormValue("background_color")),
		TextColor:       strings.TrimSpace(c.FormValue("text_color")),
		Status:          status,
		Priority:        priority,
		PricePaid:       pricePaid,
	}

	if endDate := c.FormValue("end_date"); endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "end date must be YYYY-MM-DD")
		}
		banner.EndDate = &t
	}

	return banner, nil
}
