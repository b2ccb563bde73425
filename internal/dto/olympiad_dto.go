package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// QuestionPublicDTO is a question as shown to participants: the canonical
// correct answer is never included.
type QuestionPublicDTO struct {
	ID               uint           `json:"id"`
	Text             string         `json:"text"`
	Type             string         `json:"type"`
	Options          datatypes.JSON `json:"options,omitempty"`
	Points           int            `json:"points"`
	TimeLimitSeconds int            `json:"time_limit_seconds"`
	OrderIndex       int            `json:"order_index"`
}

type PrizeDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type"`
	Strategy    string          `json:"strategy"`
	Amount      decimal.Decimal `json:"amount"`
	TargetValue int             `json:"target_value"`
}

type OlympiadSummaryDTO struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description,omitempty"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	QuestionCount   int             `json:"question_count"`
	ParticipantsCnt int64           `json:"participants_count"`
	MaxParticipants *int            `json:"max_participants,omitempty"`
}

type OlympiadDetailDTO struct {
	ID                 uint                `json:"id"`
	Title              string              `json:"title"`
	Slug               string              `json:"slug"`
	Description        string              `json:"description,omitempty"`
	StartDate          *time.Time          `json:"start_date,omitempty"`
	EndDate            *time.Time          `json:"end_date,omitempty"`
	ResultTime         *time.Time          `json:"result_time,omitempty"`
	DurationMinutes    int                 `json:"duration_minutes"`
	MaxParticipants    *int                `json:"max_participants,omitempty"`
	Price              decimal.Decimal     `json:"price"`
	Currency           string              `json:"currency"`
	MaxAttempts        int                 `json:"max_attempts"`
	TabSwitchLimit     int                 `json:"tab_switch_limit"`
	RequiredCamera     bool                `json:"required_camera"`
	RequiredFullScreen bool                `json:"required_full_screen"`
	DisableCopyPaste   bool                `json:"disable_copy_paste"`
	Status             string              `json:"status"`
	Questions          []QuestionPublicDTO `json:"questions,omitempty"`
	Prizes             []PrizeDTO          `json:"prizes,omitempty"`
	IsRegistered       bool                `json:"is_registered"`
}
