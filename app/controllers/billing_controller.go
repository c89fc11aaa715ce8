package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/boost"
	"github.com/franhub/franhub/internal/pkg/jobqueue"
	"github.com/franhub/franhub/internal/pkg/payment"
	"github.com/franhub/franhub/internal/pkg/session"
	"github.com/franhub/franhub/internal/pkg/usercontext"
)

// HandlePricing renders the plan comparison page with the boost catalog.
func HandlePricing(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	limits, err := repository.GetGlobalRepositories().PlanLimit.GetAll()
	if err != nil {
		log.Errorf("pricing: plan limits load failed: %v", err)
		limits = models.DefaultPlanLimits()
	}

	premiumPrice, _ := payment.PlanPrice(models.PlanPremium)
	featuredPrice, _ := payment.PlanPrice(models.PlanFeatured)

	data := fiber.Map{
		"PageTitle":     "Pricing",
		"PlanLimits":    limits,
		"PremiumPrice":  premiumPrice,
		"FeaturedPrice": featuredPrice,
		"BoostCatalog":  boost.Catalog(),
	}
	if userCtx.IsLoggedIn {
		data["CurrentPlan"] = listingResolver().EffectivePlan(userCtx.UserID, time.Now())
	}

	return c.Render("pricing", viewContext(c, data), "layouts/main")
}

// HandleSubscriptionCheckout opens a simulated checkout session for a
// paid plan and sends the user to the processing page.
func HandleSubscriptionCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	planType := c.FormValue("plan")

	sess, err := payment.GetSimulator().BeginSubscription(userCtx.UserID, planType)
	if err != nil {
		if errors.Is(err, payment.ErrFreePlanCheckout) {
			return flash.WithInfo(c, fiber.Map{"type": "info", "message": "The basic plan is free, nothing to pay."}).Redirect("/pricing")
		}
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Unknown plan selected."}).Redirect("/pricing")
	}

	return c.Redirect("/checkout/"+sess.ID, fiber.StatusSeeOther)
}

// HandleBoostCheckout opens a simulated checkout session for a listing
// boost. The price shown already includes the plan discount.
func HandleBoostCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	listingID, err := strconv.ParseUint(c.FormValue("listing_id"), 10, 32)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Pick a listing to boost."}).Redirect("/user/listings")
	}
	days, err := strconv.Atoi(c.FormValue("days"))
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Pick a boost duration."}).Redirect("/user/listings")
	}

	// Only own listings can be boosted; the apply step re-checks this.
	listing, err := repository.GetGlobalRepositories().Listing.GetByID(uint(listingID))
	if err != nil || listing.UserID != userCtx.UserID {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Listing not found."}).Redirect("/user/listings")
	}

	sess, err := payment.GetSimulator().BeginBoost(userCtx.UserID, uint(listingID), days)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Unknown boost duration."}).Redirect("/user/listings")
	}

	return c.Redirect("/checkout/"+sess.ID, fiber.StatusSeeOther)
}

// HandleCheckoutShow renders the simulated payment processing page for a
// pending session.
func HandleCheckoutShow(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	sess, err := payment.GetSimulator().Get(c.Params("session_id"))
	if err != nil || sess.UserID != userCtx.UserID {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Checkout session not found."}).Redirect("/pricing")
	}

	return c.Render("checkout", viewContext(c, fiber.Map{
		"PageTitle": "Processing payment",
		"Session":   sess,
	}), "layouts/main")
}

// HandleCheckoutConfirm settles a pending session: on success the
// purchased subscription or boost is applied.
func HandleCheckoutConfirm(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	sessionID := c.Params("session_id")

	sess, err := payment.GetSimulator().Confirm(sessionID, userCtx.UserID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrSessionNotReady):
			// Payment still "processing": send the user back to the wait page.
			return c.Redirect("/checkout/"+sessionID, fiber.StatusSeeOther)
		case errors.Is(err, payment.ErrSessionSettled):
			return flash.WithInfo(c, fiber.Map{"type": "info", "message": "This payment was already completed."}).Redirect("/user/listings")
		default:
			log.Errorf("checkout %s confirm failed: %v", sessionID, err)
			return flash.WithError(c, fiber.Map{"type": "error", "message": "Payment failed. You have not been charged."}).Redirect("/pricing")
		}
	}

	var message, receiptItem string
	switch sess.Kind {
	case payment.KindSubscription:
		// Invalidate the session-cached plan so the upgrade is visible
		// on the next request.
		_ = session.SetSessionValue(c, usercontext.KeyUserPlan, "")
		message = fmt.Sprintf("Welcome to the %s plan!", sess.PlanType)
		receiptItem = fmt.Sprintf("%s plan (30 days)", sess.PlanType)
	case payment.KindBoost:
		message = fmt.Sprintf("Your listing is boosted for %d days!", sess.Days)
		receiptItem = fmt.Sprintf("Listing boost (%d days)", sess.Days)
	}

	receipt := jobqueue.ReceiptEmailJobPayload{
		UserID:      sess.UserID,
		SessionID:   sess.ID,
		Kind:        string(sess.Kind),
		Description: receiptItem,
		Amount:      sess.Amount,
	}
	if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypeReceiptEmail, receipt.ToMap()); err != nil {
		log.Errorf("checkout %s receipt enqueue failed: %v", sessionID, err)
	}

	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": message}).Redirect("/user/listings")
}
