package repository

import (
	"github.com/ardalabs/olympiad-engine/internal/model"
	"gorm.io/gorm"
)

type AccountRepository interface {
	FindByID(userID uint) (*model.UserAccount, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByID(userID uint) (*model.UserAccount, error) {
	var account model.UserAccount
	if err := r.db.First(&account, userID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &account, nil
}
