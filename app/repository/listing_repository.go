package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/franhub/franhub/app/models"
	"gorm.io/gorm"
)

// listingRepository implements the ListingRepository interface
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository instance
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// Create creates a new listing in the database
func (r *listingRepository) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

// GetByID retrieves a listing by its ID
func (r *listingRepository) GetByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.First(&listing, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// GetByUserID retrieves all listings owned by a user, newest first
func (r *listingRepository) GetByUserID(userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// Query retrieves listings newest first, optionally narrowed by category and
// a search term matched against name and description.
func (r *listingRepository) Query(q ListingQuery) ([]models.Listing, error) {
	db := r.db.Order("created_at DESC")
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		pattern := "%" + term + "%"
		db = db.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	var listings []models.Listing
	err := db.Find(&listings).Error
	return listings, err
}

// GetRelated retrieves up to limit listings in the same category, excluding
// the given listing.
func (r *listingRepository) GetRelated(category string, excludeID uint, limit int) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("category = ? AND id <> ?", category, excludeID).
		Order("created_at DESC").Limit(limit).Find(&listings).Error
	return listings, err
}

// Update saves listing fields, scoped to the owning user. Returns the number
// of affected rows; zero means the owner filter rejected the write.
func (r *listingRepository) Update(listing *models.Listing, ownerID uint) (int64, error) {
	result := r.db.Model(&models.Listing{}).
		Where("id = ? AND user_id = ?", listing.ID, ownerID).
		Updates(map[string]interface{}{
			"name":           listing.Name,
			"category":       listing.Category,
			"investment_min": listing.InvestmentMin,
			"investment_max": listing.InvestmentMax,
			"description":    listing.Description,
			"phone":          listing.Phone,
			"line_id":        listing.LineID,
			"location":       listing.Location,
			"features":       listing.Features,
			"image_url":      listing.ImageURL,
			"thumbnail_url":  listing.ThumbnailURL,
		})
	return result.RowsAffected, result.Error
}

// Delete removes a listing, scoped to the owning user. Returns the number of
// affected rows; zero means the owner filter rejected the delete.
func (r *listingRepository) Delete(id uint, ownerID uint) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Listing{})
	return result.RowsAffected, result.Error
}

// CountByUserID returns how many listings a user owns. Every row counts
// against quota regardless of any status a future schema might add.
func (r *listingRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Listing{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Count returns the total number of listings
func (r *listingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Listing{}).Count(&count).Error
	return count, err
}

// IncrementViewCount applies a batched view counter increment
func (r *listingRepository) IncrementViewCount(id uint, delta int64) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}

// SetBoost marks the listing boosted until endDate
func (r *listingRepository) SetBoost(id uint, endDate time.Time) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_boosted":     true,
			"boost_end_date": endDate,
		}).Error
}

// ClearExpiredBoostFlags resets IsBoosted on listings whose boost lapsed.
// Ranking never trusts the flag alone, so this only tidies reporting data.
func (r *listingRepository) ClearExpiredBoostFlags(now time.Time) (int64, error) {
	result := r.db.Model(&models.Listing{}).
		Where("is_boosted = ? AND boost_end_date IS NOT NULL AND boost_end_date <= ?", true, now).
		UpdateColumn("is_boosted", false)
	return result.RowsAffected, result.Error
}

// SetFeatured toggles the plan-granted featured flag
func (r *listingRepository) SetFeatured(id uint, featured bool) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", id).
		UpdateColumn("is_featured", featured).Error
}

// SumViewsByUserID aggregates view counts across a user's listings
func (r *listingRepository) SumViewsByUserID(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Listing{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(view_count), 0)").Scan(&total).Error
	return total, err
}
