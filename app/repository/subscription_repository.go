package repository

import (
	"errors"

	"github.com/franhub/franhub/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// GetActiveForUser returns the user's single active subscription, or
// gorm.ErrRecordNotFound when none exists.
func (r *subscriptionRepository) GetActiveForUser(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpsertActive resolves a new subscription purchase. When the user already
// holds an active row it is updated in place, keeping at most one active
// subscription per user; otherwise a new row is inserted. Superseded rows are
// never deleted.
func (r *subscriptionRepository) UpsertActive(sub *models.Subscription) error {
	existing, err := r.GetActiveForUser(sub.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		sub.Status = models.SubscriptionStatusActive
		return r.db.Create(sub).Error
	}

	return r.db.Model(existing).Updates(map[string]interface{}{
		"plan_type":            sub.PlanType,
		"current_period_start": sub.CurrentPeriodStart,
		"current_period_end":   sub.CurrentPeriodEnd,
		"price_paid":           sub.PricePaid,
		"payment_method":       sub.PaymentMethod,
	}).Error
}

// ListByUser returns every subscription row the user has held, newest first.
func (r *subscriptionRepository) ListByUser(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}
