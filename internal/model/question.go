package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMCQ     QuestionType = "MCQ"
	QuestionNumeric QuestionType = "NUMERIC"
	QuestionText    QuestionType = "TEXT"
	QuestionCode    QuestionType = "CODE"
)

type Question struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OlympiadID uint           `json:"olympiad_id" gorm:"not null;index"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	Type       QuestionType   `json:"type" gorm:"size:10;default:'MCQ'"`
	Options    datatypes.JSON `json:"options,omitempty"` // ordered option list, MCQ only

	// CorrectAnswer is string-encoded per type: option index for MCQ,
	// the literal value for NUMERIC/TEXT/CODE.
	CorrectAnswer string `json:"-" gorm:"type:text;not null"`

	Explanation      string `json:"explanation,omitempty" gorm:"type:text"`
	Points           int    `json:"points" gorm:"default:1"`
	TimeLimitSeconds int    `json:"time_limit_seconds" gorm:"default:0"`
	OrderIndex       int    `json:"order_index" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
