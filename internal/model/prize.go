package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PrizeType string

const (
	PrizeCurrency   PrizeType = "CURRENCY"
	PrizeExperience PrizeType = "EXPERIENCE"
	PrizePhysical   PrizeType = "PHYSICAL"
)

type PrizeStrategy string

const (
	StrategyTopN      PrizeStrategy = "TOP_N"
	StrategyThreshold PrizeStrategy = "THRESHOLD"
)

// PrizeDefinition describes one reward tier of an olympiad. TargetValue is a
// rank position for TOP_N and a percentage floor for THRESHOLD.
type PrizeDefinition struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	OlympiadID  uint            `json:"olympiad_id" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description,omitempty"`
	Type        PrizeType       `json:"type" gorm:"size:15;not null"`
	Strategy    PrizeStrategy   `json:"strategy" gorm:"size:15;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);default:0"`
	TargetValue int             `json:"target_value" gorm:"not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
