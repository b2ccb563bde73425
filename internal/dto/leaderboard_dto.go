package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaderboardEntry struct {
	Rank             uint            `json:"rank"`
	UserID           uint            `json:"user_id"`
	Score            int             `json:"score"`
	MaxScore         int             `json:"max_score"`
	Percentage       decimal.Decimal `json:"percentage"`
	TimeTakenSeconds int             `json:"time_taken_seconds"`
	Status           string          `json:"status"`
}

type LeaderboardDTO struct {
	OlympiadID        uint               `json:"olympiad_id"`
	Title             string             `json:"title"`
	Status            string             `json:"status"`
	ResultTime        *time.Time         `json:"result_time,omitempty"`
	ParticipantsCount int                `json:"participants_count"`
	AverageScore      float64            `json:"average_score"`
	BestTimeSeconds   int                `json:"best_time_seconds"`
	Entries           []LeaderboardEntry `json:"entries"`
}
