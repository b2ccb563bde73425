package dto

import "time"

type AwardDTO struct {
	ID           uint      `json:"id"`
	OlympiadID   uint      `json:"olympiad_id"`
	UserID       uint      `json:"user_id"`
	PrizeID      uint      `json:"prize_id"`
	RankPosition int       `json:"rank_position"`
	Status       string    `json:"status"`
	Region       string    `json:"region,omitempty"`
	City         string    `json:"city,omitempty"`
	Address      string    `json:"address,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	AwardedAt    time.Time `json:"awarded_at"`
}

// DeliveryAddressRequest is posted by the out-of-band address-capture
// channel (chat bot) once a winner shares where to ship the prize.
type DeliveryAddressRequest struct {
	Region  string `json:"region" binding:"required"`
	City    string `json:"city" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}
