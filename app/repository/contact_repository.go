package repository

import (
	"github.com/franhub/franhub/app/models"
	"gorm.io/gorm"
)

// advertiserContactRepository implements the AdvertiserContactRepository interface
type advertiserContactRepository struct {
	db *gorm.DB
}

// NewAdvertiserContactRepository creates a new advertiser contact repository instance
func NewAdvertiserContactRepository(db *gorm.DB) AdvertiserContactRepository {
	return &advertiserContactRepository{db: db}
}

// Create stores a new advertiser lead
func (r *advertiserContactRepository) Create(contact *models.AdvertiserContact) error {
	return r.db.Create(contact).Error
}

// GetByID retrieves a lead by its ID
func (r *advertiserContactRepository) GetByID(id uint) (*models.AdvertiserContact, error) {
	var contact models.AdvertiserContact
	err := r.db.First(&contact, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetAll retrieves every lead, newest first
func (r *advertiserContactRepository) GetAll() ([]models.AdvertiserContact, error) {
	var contacts []models.AdvertiserContact
	err := r.db.Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}

// UpdateStatus transitions a lead's status
func (r *advertiserContactRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.AdvertiserContact{}).Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// CountByStatus counts leads in a given status
func (r *advertiserContactRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.AdvertiserContact{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
