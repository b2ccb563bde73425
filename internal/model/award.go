package model

import "time"

type AwardStatus string

const (
	AwardPending         AwardStatus = "PENDING"
	AwardContacted       AwardStatus = "CONTACTED"
	AwardAddressReceived AwardStatus = "ADDRESS_RECEIVED"
	AwardShipped         AwardStatus = "SHIPPED"
)

// AwardRecord tracks delivery of a physical prize to a winner. At most one
// exists per (olympiad, user) regardless of how many prize tiers matched.
type AwardRecord struct {
	ID           uint `gorm:"primarykey" json:"id"`
	OlympiadID   uint `json:"olympiad_id" gorm:"not null;uniqueIndex:idx_award_olympiad_user"`
	UserID       uint `json:"user_id" gorm:"not null;uniqueIndex:idx_award_olympiad_user"`
	PrizeID      uint `json:"prize_id" gorm:"not null"`
	RankPosition int  `json:"rank_position"`

	Status AwardStatus `json:"status" gorm:"size:20;default:'PENDING'"`

	// Delivery address captured out-of-band through the messaging callback.
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`

	AwardedAt time.Time `json:"awarded_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at"`
}
