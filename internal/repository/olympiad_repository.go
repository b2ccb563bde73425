package repository

import (
	"errors"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OlympiadRepository interface {
	Create(olympiad *model.Olympiad) error
	Save(olympiad *model.Olympiad) error
	FindByID(id uint) (*model.Olympiad, error)
	FindByIDWithQuestions(id uint) (*model.Olympiad, error)
	FindByIDWithPrizes(id uint) (*model.Olympiad, error)
	FindAll() ([]model.Olympiad, error)
	SlugExists(slug string) (bool, error)
	UpdateStatus(id uint, status model.OlympiadStatus) error
	// ClaimRewardRun locks the olympiad row and flips RewardStatus to
	// IN_PROGRESS. COMPLETED yields ErrAlreadyDistributed; a concurrent
	// IN_PROGRESS run yields ErrConflict.
	ClaimRewardRun(id uint) error
	SetRewardStatus(id uint, status model.RewardStatus) error
}

type olympiadRepository struct {
	db *gorm.DB
}

func NewOlympiadRepository(db *gorm.DB) OlympiadRepository {
	return &olympiadRepository{db: db}
}

func (r *olympiadRepository) Create(olympiad *model.Olympiad) error {
	// Creates associated questions and prizes in one go.
	return r.db.Create(olympiad).Error
}

func (r *olympiadRepository) Save(olympiad *model.Olympiad) error {
	return r.db.Save(olympiad).Error
}

func (r *olympiadRepository) FindByID(id uint) (*model.Olympiad, error) {
	var olympiad model.Olympiad
	if err := r.db.First(&olympiad, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &olympiad, nil
}

func (r *olympiadRepository) FindByIDWithQuestions(id uint) (*model.Olympiad, error) {
	var olympiad model.Olympiad
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).First(&olympiad, id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &olympiad, nil
}

func (r *olympiadRepository) FindByIDWithPrizes(id uint) (*model.Olympiad, error) {
	var olympiad model.Olympiad
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index ASC")
		}).
		Preload("Prizes").
		First(&olympiad, id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &olympiad, nil
}

func (r *olympiadRepository) FindAll() ([]model.Olympiad, error) {
	var olympiads []model.Olympiad
	if err := r.db.Order("start_date DESC").Find(&olympiads).Error; err != nil {
		return nil, err
	}
	return olympiads, nil
}

func (r *olympiadRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Olympiad{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *olympiadRepository) UpdateStatus(id uint, status model.OlympiadStatus) error {
	return r.db.Model(&model.Olympiad{}).Where("id = ?", id).Update("status", status).Error
}

func (r *olympiadRepository) ClaimRewardRun(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var olympiad model.Olympiad
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&olympiad, id).Error; err != nil {
			return translateNotFound(err)
		}
		switch olympiad.RewardStatus {
		case model.RewardCompleted:
			return apperr.ErrAlreadyDistributed
		case model.RewardInProgress:
			return apperr.ErrConflict
		}
		return tx.Model(&olympiad).Update("reward_status", model.RewardInProgress).Error
	})
}

func (r *olympiadRepository) SetRewardStatus(id uint, status model.RewardStatus) error {
	return r.db.Model(&model.Olympiad{}).Where("id = ?", id).Update("reward_status", status).Error
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
