package repository

import (
	"github.com/ardalabs/olympiad-engine/internal/model"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(registration *model.Registration) error
	Exists(userID, olympiadID uint) (bool, error)
	CountByOlympiad(olympiadID uint) (int64, error)
	FindByOlympiad(olympiadID uint) ([]model.Registration, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(registration *model.Registration) error {
	return r.db.Create(registration).Error
}

func (r *registrationRepository) Exists(userID, olympiadID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Registration{}).
		Where("user_id = ? AND olympiad_id = ?", userID, olympiadID).
		Count(&count).Error
	return count > 0, err
}

func (r *registrationRepository) CountByOlympiad(olympiadID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Registration{}).Where("olympiad_id = ?", olympiadID).Count(&count).Error
	return count, err
}

func (r *registrationRepository) FindByOlympiad(olympiadID uint) ([]model.Registration, error) {
	var registrations []model.Registration
	err := r.db.Where("olympiad_id = ?", olympiadID).Order("registered_at ASC").Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}
