package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserAccount is the ledger row for one user: coin balance plus experience.
// It is owned by external account management; the engine only credits it
// through the ledger with row-level locking.
type UserAccount struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	Balance    decimal.Decimal `json:"balance" gorm:"type:numeric(12,2);default:0"`
	XP         int             `json:"xp" gorm:"default:0"`
	Level      int             `json:"level" gorm:"default:1"`
	TelegramID *int64          `json:"telegram_id,omitempty" gorm:"uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LevelForXP maps accumulated experience to a level, 500 XP per level.
func LevelForXP(xp int) int {
	return xp/500 + 1
}
