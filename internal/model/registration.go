package model

import "time"

type Registration struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_registration_user_olympiad"`
	OlympiadID   uint      `json:"olympiad_id" gorm:"not null;uniqueIndex:idx_registration_user_olympiad"`
	IsPaid       bool      `json:"is_paid" gorm:"default:false"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
}
