package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttemptDTO mirrors one attempt row; answers are included only in the
// owner's own views.
type AttemptDTO struct {
	ID                 uint            `json:"id"`
	OlympiadID         uint            `json:"olympiad_id"`
	UserID             uint            `json:"user_id"`
	Status             string          `json:"status"`
	Score              int             `json:"score"`
	Percentage         decimal.Decimal `json:"percentage"`
	TimeTakenSeconds   int             `json:"time_taken_seconds"`
	TabSwitchCount     int             `json:"tab_switch_count"`
	DisqualifiedReason string          `json:"disqualified_reason,omitempty"`
	StartedAt          time.Time       `json:"started_at"`
}

type StartAttemptResponse struct {
	Attempt          AttemptDTO `json:"attempt"`
	DeadlineAt       time.Time  `json:"deadline_at"`
	RemainingSeconds int        `json:"remaining_seconds"`
}

type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Value      string `json:"value" binding:"required"`
}

type FinishAttemptRequest struct {
	TabSwitches int `json:"tab_switches" binding:"min=0"`
}

// MyResultDTO is the participant-facing result view, gated by result time.
type MyResultDTO struct {
	Status     string      `json:"status"` // WAITING_RESULTS or RESULTS_OPEN
	ResultTime *time.Time  `json:"result_time,omitempty"`
	Rank       int         `json:"rank,omitempty"`
	Attempt    *AttemptDTO `json:"attempt,omitempty"`
}
