package repository

import (
	"github.com/ardalabs/olympiad-engine/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	Delete(id uint) error
	FindByUserAndOlympiad(userID, olympiadID uint) (*model.Attempt, error)
	UpdateAnswers(attempt *model.Attempt) error
	// FinishIfInProgress applies the terminal fields of attempt with a single
	// conditional update guarded on the current status still being
	// IN_PROGRESS. Returns false when a concurrent finisher won the race.
	FinishIfInProgress(attempt *model.Attempt) (bool, error)
	// FindCompletedByOlympiad returns COMPLETED attempts in ranking order:
	// score desc, time asc, id asc (submission order) as the final tie-break.
	FindCompletedByOlympiad(olympiadID uint) ([]model.Attempt, error)
	FindByOlympiad(olympiadID uint) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Delete(id uint) error {
	return r.db.Delete(&model.Attempt{}, id).Error
}

func (r *attemptRepository) FindByUserAndOlympiad(userID, olympiadID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("user_id = ? AND olympiad_id = ?", userID, olympiadID).First(&attempt).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &attempt, nil
}

func (r *attemptRepository) UpdateAnswers(attempt *model.Attempt) error {
	return r.db.Model(attempt).Update("answers", attempt.Answers).Error
}

func (r *attemptRepository) FinishIfInProgress(attempt *model.Attempt) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":              attempt.Status,
			"score":               attempt.Score,
			"percentage":          attempt.Percentage,
			"time_taken_seconds":  attempt.TimeTakenSeconds,
			"tab_switch_count":    attempt.TabSwitchCount,
			"disqualified_reason": attempt.DisqualifiedReason,
			"answers":             attempt.Answers,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *attemptRepository) FindCompletedByOlympiad(olympiadID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Where("olympiad_id = ? AND status = ?", olympiadID, model.AttemptCompleted).
		Order("score DESC").
		Order("time_taken_seconds ASC").
		Order("id ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) FindByOlympiad(olympiadID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Where("olympiad_id = ?", olympiadID).
		Order("score DESC").
		Order("time_taken_seconds ASC").
		Order("id ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
