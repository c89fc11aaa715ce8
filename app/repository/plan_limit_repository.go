package repository

import (
	"errors"

	"github.com/franhub/franhub/app/models"
	"gorm.io/gorm"
)

// planLimitRepository implements the PlanLimitRepository interface
type planLimitRepository struct {
	db *gorm.DB
}

// NewPlanLimitRepository creates a new plan limit repository instance
func NewPlanLimitRepository(db *gorm.DB) PlanLimitRepository {
	return &planLimitRepository{db: db}
}

// GetByPlanType retrieves the limits row for a plan tier
func (r *planLimitRepository) GetByPlanType(planType string) (*models.PlanLimit, error) {
	var limit models.PlanLimit
	err := r.db.Where("plan_type = ?", planType).First(&limit).Error
	if err != nil {
		return nil, err
	}
	return &limit, nil
}

// GetAll retrieves every plan limits row
func (r *planLimitRepository) GetAll() ([]models.PlanLimit, error) {
	var limits []models.PlanLimit
	err := r.db.Order("id ASC").Find(&limits).Error
	return limits, err
}

// Seed inserts the default plan catalog rows for any tier not yet present.
// Existing rows are left untouched so manual catalog edits survive restarts.
func (r *planLimitRepository) Seed() error {
	for _, limit := range models.DefaultPlanLimits() {
		var existing models.PlanLimit
		err := r.db.Where("plan_type = ?", limit.PlanType).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row := limit
		if err := r.db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
