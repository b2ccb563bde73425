package repository

import (
	"github.com/ardalabs/olympiad-engine/internal/model"
	"gorm.io/gorm"
)

// PaymentChecker is the read-only eligibility contract consumed by the
// registration manager. Payments themselves are collected elsewhere.
type PaymentChecker interface {
	HasCompletedPayment(userID, olympiadID uint) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentChecker {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) HasCompletedPayment(userID, olympiadID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).
		Where("user_id = ? AND olympiad_id = ? AND status = ?", userID, olympiadID, model.PaymentSuccess).
		Count(&count).Error
	return count > 0, err
}
