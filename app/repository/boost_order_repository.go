package repository

import (
	"github.com/franhub/franhub/app/models"
	"gorm.io/gorm"
)

// boostOrderRepository implements the BoostOrderRepository interface
type boostOrderRepository struct {
	db *gorm.DB
}

// NewBoostOrderRepository creates a new boost order repository instance
func NewBoostOrderRepository(db *gorm.DB) BoostOrderRepository {
	return &boostOrderRepository{db: db}
}

// Create stores a new boost purchase record
func (r *boostOrderRepository) Create(order *models.BoostOrder) error {
	return r.db.Create(order).Error
}

// GetByListingID retrieves all boost orders for a listing, newest first
func (r *boostOrderRepository) GetByListingID(listingID uint) ([]models.BoostOrder, error) {
	var orders []models.BoostOrder
	err := r.db.Where("listing_id = ?", listingID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetByUserID retrieves all boost orders placed by a user, newest first
func (r *boostOrderRepository) GetByUserID(userID uint) ([]models.BoostOrder, error) {
	var orders []models.BoostOrder
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}
