package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuestionRequest struct {
	Text             string   `json:"text" binding:"required"`
	Type             string   `json:"type" binding:"required,oneof=MCQ NUMERIC TEXT CODE"`
	Options          []string `json:"options"` // required for MCQ
	CorrectAnswer    string   `json:"correct_answer" binding:"required"`
	Explanation      string   `json:"explanation"`
	Points           int      `json:"points" binding:"required,min=1"`
	TimeLimitSeconds int      `json:"time_limit_seconds" binding:"min=0"`
	OrderIndex       int      `json:"order_index"`
}

type PrizeRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Type        string          `json:"type" binding:"required,oneof=CURRENCY EXPERIENCE PHYSICAL"`
	Strategy    string          `json:"strategy" binding:"required,oneof=TOP_N THRESHOLD"`
	Amount      decimal.Decimal `json:"amount"`
	TargetValue int             `json:"target_value" binding:"required,min=1"`
}

type CreateOlympiadRequest struct {
	Title              string            `json:"title" binding:"required"`
	Description        string            `json:"description"`
	StartDate          *time.Time        `json:"start_date"`
	EndDate            *time.Time        `json:"end_date"`
	DurationMinutes    int               `json:"duration_minutes" binding:"min=0"`
	MaxParticipants    *int              `json:"max_participants"`
	Price              decimal.Decimal   `json:"price"`
	Currency           string            `json:"currency"`
	MaxAttempts        int               `json:"max_attempts" binding:"min=0"`
	TabSwitchLimit     int               `json:"tab_switch_limit" binding:"min=0"`
	RequiredCamera     bool              `json:"required_camera"`
	RequiredFullScreen bool              `json:"required_full_screen"`
	DisableCopyPaste   bool              `json:"disable_copy_paste"`
	XPReward           int               `json:"xp_reward" binding:"min=0"`
	AutoReward         bool              `json:"auto_reward"`
	Questions          []QuestionRequest `json:"questions" binding:"omitempty,dive"`
	Prizes             []PrizeRequest    `json:"prizes" binding:"omitempty,dive"`
}

type ReplaceQuestionsRequest struct {
	Questions []QuestionRequest `json:"questions" binding:"required,dive"`
}

type UpdateAwardStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=SHIPPED"`
}
