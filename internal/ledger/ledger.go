// Package ledger owns every mutation of user balances and experience. The
// account row is a shared resource (purchases, rewards and manual admin
// confirmations can race on it), so each grant takes a row-level lock inside
// a transaction and writes an audit row whose reference makes it idempotent.
package ledger

import (
	"errors"
	"fmt"

	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Ledger interface {
	// Credit adds amount to the user's balance and records an audit
	// transaction. A repeated call with the same reference returns the
	// original transaction ID without crediting again.
	Credit(userID uint, amount decimal.Decimal, reason, reference string) (string, error)
	// AddExperience increments the user's XP (and derived level) with the
	// same per-reference idempotency.
	AddExperience(userID uint, amount int, reason, reference string) error
}

type gormLedger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

func (l *gormLedger) Credit(userID uint, amount decimal.Decimal, reason, reference string) (string, error) {
	if amount.Sign() <= 0 {
		return "", fmt.Errorf("credit amount must be positive, got %s", amount)
	}

	var txID string
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if existing, err := findSettled(tx, reference, model.TxOlympiadReward); err != nil {
			return err
		} else if existing != nil {
			txID = existing.ID
			return nil
		}

		var account model.UserAccount
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, userID).Error; err != nil {
			return fmt.Errorf("loading account %d: %w", userID, err)
		}
		account.Balance = account.Balance.Add(amount)
		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		record := model.LedgerTransaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        model.TxOlympiadReward,
			Amount:      amount,
			Status:      model.TxSuccess,
			Description: reason,
			Reference:   reference,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		txID = record.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}

func (l *gormLedger) AddExperience(userID uint, amount int, reason, reference string) error {
	if amount <= 0 {
		return nil
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		if existing, err := findSettled(tx, reference, model.TxExperienceReward); err != nil {
			return err
		} else if existing != nil {
			log.Debug().Str("reference", reference).Msg("Experience grant already settled, skipping")
			return nil
		}

		var account model.UserAccount
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, userID).Error; err != nil {
			return fmt.Errorf("loading account %d: %w", userID, err)
		}
		account.XP += amount
		account.Level = model.LevelForXP(account.XP)
		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		return tx.Create(&model.LedgerTransaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        model.TxExperienceReward,
			Amount:      decimal.NewFromInt(int64(amount)),
			Status:      model.TxSuccess,
			Description: reason,
			Reference:   reference,
		}).Error
	})
}

func findSettled(tx *gorm.DB, reference string, txType model.TransactionType) (*model.LedgerTransaction, error) {
	if reference == "" {
		return nil, nil
	}
	var record model.LedgerTransaction
	err := tx.Where("reference = ? AND type = ? AND status = ?", reference, txType, model.TxSuccess).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
