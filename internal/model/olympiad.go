package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OlympiadStatus string

const (
	OlympiadDraft     OlympiadStatus = "DRAFT"
	OlympiadUpcoming  OlympiadStatus = "UPCOMING"
	OlympiadOngoing   OlympiadStatus = "ONGOING"
	OlympiadPaused    OlympiadStatus = "PAUSED"
	OlympiadChecking  OlympiadStatus = "CHECKING"
	OlympiadPublished OlympiadStatus = "PUBLISHED"
	OlympiadCompleted OlympiadStatus = "COMPLETED"
	OlympiadCanceled  OlympiadStatus = "CANCELED"
)

type RewardStatus string

const (
	RewardNone       RewardStatus = "NONE"
	RewardInProgress RewardStatus = "IN_PROGRESS"
	RewardCompleted  RewardStatus = "COMPLETED"
	RewardFailed     RewardStatus = "FAILED"
)

type Olympiad struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Title       string  `json:"title" gorm:"not null"`
	Slug        string  `json:"slug" gorm:"uniqueIndex"`
	Description string  `json:"description,omitempty"`
	Subject     *string `json:"subject,omitempty"`

	// Schedule
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	ResultTime      *time.Time `json:"result_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes" gorm:"default:60"`

	// Participants and pricing
	MaxParticipants *int            `json:"max_participants,omitempty"`
	Price           decimal.Decimal `json:"price" gorm:"type:numeric(12,2);default:0"`
	Currency        string          `json:"currency" gorm:"size:3;default:'UZS'"`

	// Anti-cheat configuration
	TabSwitchLimit     int  `json:"tab_switch_limit" gorm:"default:3"`
	RequiredCamera     bool `json:"required_camera" gorm:"default:false"`
	RequiredFullScreen bool `json:"required_full_screen" gorm:"default:false"`
	DisableCopyPaste   bool `json:"disable_copy_paste" gorm:"default:false"`

	// Retry and reward policy
	MaxAttempts int  `json:"max_attempts" gorm:"default:1"`
	XPReward    int  `json:"xp_reward" gorm:"default:50"`
	AutoReward  bool `json:"auto_reward" gorm:"default:false"`

	Status       OlympiadStatus `json:"status" gorm:"size:15;default:'DRAFT'"`
	RewardStatus RewardStatus   `json:"reward_status" gorm:"size:15;default:'NONE'"`

	Questions []Question        `json:"questions,omitempty" gorm:"foreignKey:OlympiadID;constraint:OnDelete:CASCADE"`
	Prizes    []PrizeDefinition `json:"prizes,omitempty" gorm:"foreignKey:OlympiadID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// manuallyPinned reports whether the stored status was set by an operator and
// must never be overwritten by schedule-derived transitions.
func (o *Olympiad) manuallyPinned() bool {
	switch o.Status {
	case OlympiadDraft, OlympiadPaused, OlympiadCanceled, OlympiadPublished, OlympiadCompleted, OlympiadChecking:
		return true
	}
	return false
}

// EffectiveStatus derives UPCOMING/ONGOING/CHECKING from the schedule.
// Pinned statuses and olympiads without dates are returned as stored.
func (o *Olympiad) EffectiveStatus(now time.Time) OlympiadStatus {
	if o.manuallyPinned() {
		return o.Status
	}
	if o.StartDate == nil || o.EndDate == nil {
		return o.Status
	}
	switch {
	case now.Before(*o.StartDate):
		return OlympiadUpcoming
	case !now.After(*o.EndDate):
		return OlympiadOngoing
	default:
		return OlympiadChecking
	}
}

// ResultsOpen reports whether the ranking is visible to regular participants.
func (o *Olympiad) ResultsOpen(now time.Time) bool {
	if o.Status == OlympiadPublished {
		return true
	}
	return o.ResultTime != nil && !now.Before(*o.ResultTime)
}
