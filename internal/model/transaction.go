package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxOlympiadReward   TransactionType = "OLYMPIAD_REWARD"
	TxExperienceReward TransactionType = "EXPERIENCE_REWARD"
	TxParticipationXP  TransactionType = "PARTICIPATION_XP"
)

type TransactionStatus string

const (
	TxPending TransactionStatus = "PENDING"
	TxSuccess TransactionStatus = "SUCCESS"
	TxFailed  TransactionStatus = "FAILED"
)

// LedgerTransaction is the audit row written alongside every balance or
// experience mutation. Reference makes a grant idempotent: re-running a
// failed distribution skips references that already have a SUCCESS row.
type LedgerTransaction struct {
	ID          string            `gorm:"primarykey;size:36" json:"id"`
	UserID      uint              `json:"user_id" gorm:"not null;index"`
	Type        TransactionType   `json:"type" gorm:"size:30;not null"`
	Amount      decimal.Decimal   `json:"amount" gorm:"type:numeric(12,2)"`
	Status      TransactionStatus `json:"status" gorm:"size:15;default:'PENDING'"`
	Description string            `json:"description,omitempty"`
	Reference   string            `json:"reference,omitempty" gorm:"index"`
	CreatedAt   time.Time         `json:"created_at"`
}
