package repository

import (
	"github.com/ardalabs/olympiad-engine/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByOlympiadID(olympiadID uint) ([]model.Question, error)
	CountByOlympiad(olympiadID uint) (int64, error)
	// ReplaceForOlympiad swaps the full question set atomically. Immutability
	// once registrations exist is enforced in the service layer.
	ReplaceForOlympiad(olympiadID uint, questions []model.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByOlympiadID(olympiadID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("olympiad_id = ?", olympiadID).Order("order_index ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountByOlympiad(olympiadID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("olympiad_id = ?", olympiadID).Count(&count).Error
	return count, err
}

func (r *questionRepository) ReplaceForOlympiad(olympiadID uint, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("olympiad_id = ?", olympiadID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].OlympiadID = olympiadID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}
