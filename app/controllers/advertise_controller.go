package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/jobqueue"
)

// AdPackage is one advertised banner slot with its monthly rate, shown
// on the advertise page.
type AdPackage struct {
	Position     string
	Label        string
	MonthlyPrice int
	Description  string
}

// AdPackages lists the bookable slots, most prominent first.
func AdPackages() []AdPackage {
	return []AdPackage{
		{Position: models.BannerPositionHeader, Label: "Header banner", MonthlyPrice: 15000, Description: "Top of every marketplace page"},
		{Position: models.BannerPositionSidebar, Label: "Sidebar banner", MonthlyPrice: 8000, Description: "Alongside browse results"},
		{Position: models.BannerPositionInline, Label: "Inline banner", MonthlyPrice: 5000, Description: "Inside listing detail pages"},
		{Position: models.BannerPositionFooter, Label: "Footer banner", MonthlyPrice: 12000, Description: "Bottom of every marketplace page"},
	}
}

// HandleAdvertise renders the advertiser landing page with the slot
// packages and the contact form.
func HandleAdvertise(c *fiber.Ctx) error {
	return c.Render("advertise", viewContext(c, fiber.Map{
		"PageTitle": "Advertise with us",
		"Packages":  AdPackages(),
	}), "layouts/main")
}

// HandleAdvertiseSubmit stores an advertiser lead and notifies the
// sales inbox best-effort.
func HandleAdvertiseSubmit(c *fiber.Ctx) error {
	contact := &models.AdvertiserContact{
		CompanyName: strings.TrimSpace(c.FormValue("company_name")),
		ContactName: strings.TrimSpace(c.FormValue("contact_name")),
		Email:       strings.TrimSpace(c.FormValue("email")),
		Phone:       strings.TrimSpace(c.FormValue("phone")),
		PackageKey:  c.FormValue("package"),
		Message:     strings.TrimSpace(c.FormValue("message")),
		Status:      models.ContactStatusNew,
	}

	if err := contact.Validate(); err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Please fill in company, contact name and a valid email."}).Redirect("/advertise")
	}

	if err := repository.GetGlobalRepositories().Contact.Create(contact); err != nil {
		log.Errorf("advertiser lead save failed: %v", err)
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not submit your request. Please try again."}).Redirect("/advertise")
	}

	// Notify sales via the job queue; the lead is already stored, so a
	// failed enqueue only logs.
	payload := jobqueue.LeadNotificationJobPayload{ContactID: contact.ID}
	if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypeLeadNotification, payload.ToMap()); err != nil {
		log.Errorf("advertiser lead notification enqueue failed: %v", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Thanks! Our team will reach out within one business day.",
	}
	return flash.WithSuccess(c, fm).Redirect("/advertise")
}
