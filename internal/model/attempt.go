package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttemptStatus string

const (
	AttemptInProgress   AttemptStatus = "IN_PROGRESS"
	AttemptCompleted    AttemptStatus = "COMPLETED"
	AttemptDisqualified AttemptStatus = "DISQUALIFIED"
)

// Attempt is one user's run through an olympiad, unique per (user, olympiad).
// Re-attempts delete and recreate the row rather than mutating it in place.
type Attempt struct {
	ID         uint `gorm:"primarykey" json:"id"`
	UserID     uint `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_user_olympiad"`
	OlympiadID uint `json:"olympiad_id" gorm:"not null;uniqueIndex:idx_attempt_user_olympiad"`

	Answers          AnswerMap       `json:"answers" gorm:"type:jsonb"`
	Score            int             `json:"score" gorm:"default:0"`
	Percentage       decimal.Decimal `json:"percentage" gorm:"type:numeric(5,2);default:0"`
	TimeTakenSeconds int             `json:"time_taken_seconds" gorm:"default:0"`
	TabSwitchCount   int             `json:"tab_switch_count" gorm:"default:0"`

	Status             AttemptStatus `json:"status" gorm:"size:20;default:'IN_PROGRESS'"`
	DisqualifiedReason string        `json:"disqualified_reason,omitempty"`

	StartedAt time.Time `json:"started_at" gorm:"autoCreateTime"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Attempt) Terminal() bool {
	return a.Status == AttemptCompleted || a.Status == AttemptDisqualified
}

// Expired reports whether an IN_PROGRESS attempt has outlived the allotted
// duration and is subject to stale-attempt reclamation.
func (a *Attempt) Expired(now time.Time, durationMinutes int) bool {
	if a.Status != AttemptInProgress {
		return false
	}
	if durationMinutes <= 0 {
		durationMinutes = 120
	}
	return now.Sub(a.StartedAt) > time.Duration(durationMinutes)*time.Minute
}
