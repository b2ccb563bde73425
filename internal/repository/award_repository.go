package repository

import (
	"github.com/ardalabs/olympiad-engine/internal/model"
	"gorm.io/gorm"
)

type AwardRepository interface {
	Create(award *model.AwardRecord) error
	Exists(olympiadID, userID uint) (bool, error)
	FindByID(id uint) (*model.AwardRecord, error)
	FindByOlympiad(olympiadID uint) ([]model.AwardRecord, error)
	Save(award *model.AwardRecord) error
	// TransitionStatus moves an award from one status to the next with a
	// conditional update; false means the award was not in `from` anymore.
	TransitionStatus(id uint, from, to model.AwardStatus) (bool, error)
}

type awardRepository struct {
	db *gorm.DB
}

func NewAwardRepository(db *gorm.DB) AwardRepository {
	return &awardRepository{db: db}
}

func (r *awardRepository) Create(award *model.AwardRecord) error {
	return r.db.Create(award).Error
}

func (r *awardRepository) Exists(olympiadID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.AwardRecord{}).
		Where("olympiad_id = ? AND user_id = ?", olympiadID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *awardRepository) FindByID(id uint) (*model.AwardRecord, error) {
	var award model.AwardRecord
	if err := r.db.First(&award, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &award, nil
}

func (r *awardRepository) FindByOlympiad(olympiadID uint) ([]model.AwardRecord, error) {
	var awards []model.AwardRecord
	err := r.db.Where("olympiad_id = ?", olympiadID).Order("rank_position ASC").Find(&awards).Error
	if err != nil {
		return nil, err
	}
	return awards, nil
}

func (r *awardRepository) Save(award *model.AwardRecord) error {
	return r.db.Save(award).Error
}

func (r *awardRepository) TransitionStatus(id uint, from, to model.AwardStatus) (bool, error) {
	res := r.db.Model(&model.AwardRecord{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
