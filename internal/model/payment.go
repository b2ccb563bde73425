package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Payment records an entry-fee payment collected by the external payment
// provider. The engine only reads it as a registration precondition.
type Payment struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	UserID     uint            `json:"user_id" gorm:"not null;index:idx_payment_user_olympiad"`
	OlympiadID uint            `json:"olympiad_id" gorm:"not null;index:idx_payment_user_olympiad"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(12,2)"`
	Status     PaymentStatus   `json:"status" gorm:"size:15;default:'PENDING'"`
	Provider   string          `json:"provider,omitempty" gorm:"size:50"`
	ExternalID string          `json:"external_id,omitempty" gorm:"size:255"`
	CreatedAt  time.Time       `json:"created_at"`
}
