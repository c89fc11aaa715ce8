package controllers

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/entitlements"
	"github.com/franhub/franhub/internal/pkg/imageprocessor"
	"github.com/franhub/franhub/internal/pkg/imagestorage"
	"github.com/franhub/franhub/internal/pkg/statistics"
	"github.com/franhub/franhub/internal/pkg/usercontext"
)

func listingResolver() *entitlements.Resolver {
	repos := repository.GetGlobalRepositories()
	return entitlements.NewResolver(repos.Subscription, repos.PlanLimit, repos.Listing)
}

// HandleListingCreate renders the create form and processes submissions.
// Creation is gated on the user's plan quota.
func HandleListingCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	ent := listingResolver().Resolve(userCtx.UserID, time.Now())

	if c.Method() == fiber.MethodPost {
		if !ent.CanAddListing() {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("Your %s plan allows %d listing(s). Upgrade to add more.", ent.PlanType, ent.MaxListings),
			}
			return flash.WithError(c, fm).Redirect("/pricing")
		}

		listing, err := listingFromForm(c, userCtx.UserID)
		if err != nil {
			return flash.WithError(c, fiber.Map{"type": "error", "message": err.Error()}).Redirect("/user/listings/create")
		}

		if err := attachUploadedImage(c, listing); err != nil {
			return flash.WithError(c, fiber.Map{"type": "error", "message": err.Error()}).Redirect("/user/listings/create")
		}

		if err := repository.GetGlobalRepositories().Listing.Create(listing); err != nil {
			log.Errorf("listing create failed: %v", err)
			return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not save the listing. Please try again."}).Redirect("/user/listings/create")
		}

		go statistics.UpdateStatisticsCache()

		fm := fiber.Map{
			"type":    "success",
			"message": "Your franchise listing is live!",
		}
		return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/listing/%d", listing.ID))
	}

	return c.Render("listing_form", viewContext(c, fiber.Map{
		"PageTitle":   "New listing",
		"Categories":  models.Categories,
		"Features":    models.AvailableFeatures,
		"Entitlement": ent,
		"FormAction":  "/user/listings/create",
	}), "layouts/main")
}

// HandleListingEdit renders the edit form and processes updates. Writes
// are owner-scoped at the repository level.
func HandleListingEdit(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/user/listings", fiber.StatusSeeOther)
	}

	repos := repository.GetGlobalRepositories()
	listing, err := repos.Listing.GetByID(uint(id))
	if err != nil || listing.UserID != userCtx.UserID {
		fm := fiber.Map{"type": "error", "message": "Listing not found"}
		return flash.WithError(c, fm).Redirect("/user/listings")
	}

	if c.Method() == fiber.MethodPost {
		updated, err := listingFromForm(c, userCtx.UserID)
		if err != nil {
			return flash.WithError(c, fiber.Map{"type": "error", "message": err.Error()}).Redirect(fmt.Sprintf("/user/listings/edit/%d", id))
		}
		updated.ID = listing.ID
		updated.ImageURL = listing.ImageURL
		updated.ThumbnailURL = listing.ThumbnailURL

		if err := attachUploadedImage(c, updated); err != nil {
			return flash.WithError(c, fiber.Map{"type": "error", "message": err.Error()}).Redirect(fmt.Sprintf("/user/listings/edit/%d", id))
		}

		rows, err := repos.Listing.Update(updated, userCtx.UserID)
		if err != nil {
			log.Errorf("listing %d update failed: %v", id, err)
			return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not update the listing."}).Redirect("/user/listings")
		}
		if rows == 0 {
			fm := fiber.Map{"type": "error", "message": "Listing not found"}
			return flash.WithError(c, fm).Redirect("/user/listings")
		}

		fm := fiber.Map{"type": "success", "message": "Listing updated."}
		return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/listing/%d", id))
	}

	ent := listingResolver().Resolve(userCtx.UserID, time.Now())
	return c.Render("listing_form", viewContext(c, fiber.Map{
		"PageTitle":   "Edit listing",
		"Listing":     listing,
		"Categories":  models.Categories,
		"Features":    models.AvailableFeatures,
		"Entitlement": ent,
		"FormAction":  fmt.Sprintf("/user/listings/edit/%d", id),
	}), "layouts/main")
}

// HandleListingDelete removes one of the user's listings.
func HandleListingDelete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/user/listings", fiber.StatusSeeOther)
	}

	rows, err := repository.GetGlobalRepositories().Listing.Delete(uint(id), userCtx.UserID)
	if err != nil {
		log.Errorf("listing %d delete failed: %v", id, err)
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Could not delete the listing."}).Redirect("/user/listings")
	}
	if rows == 0 {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Listing not found"}).Redirect("/user/listings")
	}

	go statistics.UpdateStatisticsCache()

	fm := fiber.Map{"type": "success", "message": "Listing deleted."}
	return flash.WithSuccess(c, fm).Redirect("/user/listings")
}

// listingFromForm builds and validates a listing from the submitted form.
func listingFromForm(c *fiber.Ctx, userID uint) (*models.Listing, error) {
	investmentMin, err := strconv.Atoi(strings.TrimSpace(c.FormValue("investment_min", "0")))
	if err != nil {
		return nil, fmt.Errorf("minimum investment must be a number")
	}
	investmentMax, err := strconv.Atoi(strings.TrimSpace(c.FormValue("investment_max", "0")))
	if err != nil {
		return nil, fmt.Errorf("maximum investment must be a number")
	}

	form, err := c.MultipartForm()
	var features models.FeatureList
	if err == nil && form != nil {
		features = form.Value["features"]
	}

	listing := &models.Listing{
		UserID:        userID,
		Name:          strings.TrimSpace(c.FormValue("name")),
		Category:      c.FormValue("category"),
		InvestmentMin: investmentMin,
		InvestmentMax: investmentMax,
		Description:   strings.TrimSpace(c.FormValue("description")),
		Phone:         strings.TrimSpace(c.FormValue("phone")),
		LineID:        strings.TrimSpace(c.FormValue("line_id")),
		Location:      strings.TrimSpace(c.FormValue("location")),
		Features:      features,
	}

	if err := listing.Validate(); err != nil {
		return nil, err
	}
	return listing, nil
}

// attachUploadedImage processes an optional "image" form file and stores
// the variants, filling the listing's image URLs. A missing file leaves
// the listing unchanged.
func attachUploadedImage(c *fiber.Ctx, listing *models.Listing) error {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil {
		return nil
	}

	if fileHeader.Size > imageprocessor.MaxUploadBytes {
		return imageprocessor.ErrTooLarge
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("could not read the uploaded image")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("could not read the uploaded image")
	}

	result, err := imageprocessor.Process(data, fileHeader.Filename)
	if err != nil {
		return err
	}

	key := uuid.New().String()
	store := imagestorage.Get()
	ctx := context.Background()

	imageURL, err := store.Put(ctx, "listings/"+key+".jpg", result.Original, "image/jpeg")
	if err != nil {
		log.Errorf("image upload failed: %v", err)
		return fmt.Errorf("could not store the uploaded image")
	}
	thumbURL, err := store.Put(ctx, "listings/"+key+"_thumb.jpg", result.Thumbnail, "image/jpeg")
	if err != nil {
		log.Errorf("thumbnail upload failed: %v", err)
		return fmt.Errorf("could not store the uploaded image")
	}
	// Preview variant is best-effort; the detail page falls back to the original.
	if _, err := store.Put(ctx, "listings/"+key+"_preview.webp", result.PreviewWebP, "image/webp"); err != nil {
		log.Warnf("preview upload failed: %v", err)
	}

	listing.ImageURL = imageURL
	listing.ThumbnailURL = thumbURL
	return nil
}
