package repository

import (
	"time"

	"github.com/franhub/franhub/app/models"
	"gorm.io/gorm"
)

// bannerAdRepository implements the BannerAdRepository interface
type bannerAdRepository struct {
	db *gorm.DB
}

// NewBannerAdRepository creates a new banner ad repository instance
func NewBannerAdRepository(db *gorm.DB) BannerAdRepository {
	return &bannerAdRepository{db: db}
}

// Create creates a new banner ad
func (r *bannerAdRepository) Create(banner *models.BannerAd) error {
	return r.db.Create(banner).Error
}

// GetByID retrieves a banner ad by its ID
func (r *bannerAdRepository) GetByID(id uint) (*models.BannerAd, error) {
	var banner models.BannerAd
	err := r.db.First(&banner, id).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

// GetAll retrieves every banner ad, newest first
func (r *bannerAdRepository) GetAll() ([]models.BannerAd, error) {
	var banners []models.BannerAd
	err := r.db.Order("created_at DESC").Find(&banners).Error
	return banners, err
}

// GetServableByPosition retrieves the active, non-expired creatives for one
// ad slot, highest priority first. Expiry is tested against the caller's
// clock; nothing in storage is cleared.
func (r *bannerAdRepository) GetServableByPosition(position string, now time.Time) ([]models.BannerAd, error) {
	var banners []models.BannerAd
	err := r.db.Where("position = ? AND status = ?", position, models.BannerStatusActive).
		Where("end_date IS NULL OR end_date > ?", now).
		Order("priority DESC").Find(&banners).Error
	return banners, err
}

// Update saves banner ad fields
func (r *bannerAdRepository) Update(banner *models.BannerAd) error {
	return r.db.Save(banner).Error
}

// UpdateStatus transitions a banner ad's lifecycle state
func (r *bannerAdRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.BannerAd{}).Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// Delete removes a banner ad
func (r *bannerAdRepository) Delete(id uint) error {
	return r.db.Delete(&models.BannerAd{}, id).Error
}

// IncrementImpressions applies a batched impression counter increment
func (r *bannerAdRepository) IncrementImpressions(id uint, delta int64) error {
	return r.db.Model(&models.BannerAd{}).Where("id = ?", id).
		UpdateColumn("impressions", gorm.Expr("impressions + ?", delta)).Error
}

// IncrementClicks applies a batched click counter increment
func (r *bannerAdRepository) IncrementClicks(id uint, delta int64) error {
	return r.db.Model(&models.BannerAd{}).Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", delta)).Error
}
