package service

import (
	"strings"

	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/shopspring/decimal"
)

// ScoreResult is the outcome of grading one attempt against the question set.
type ScoreResult struct {
	Score       int
	TotalPoints int
	Percentage  decimal.Decimal
}

// ScoringService grades submitted answers. It is a pure computation: the
// result is reproducible from (questions, answers) alone and nothing is
// persisted here.
type ScoringService interface {
	Score(questions []model.Question, answers model.AnswerMap) ScoreResult
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) Score(questions []model.Question, answers model.AnswerMap) ScoreResult {
	result := ScoreResult{Percentage: decimal.Zero}

	for _, q := range questions {
		result.TotalPoints += q.Points
		submitted, ok := answers[q.ID]
		if !ok {
			continue
		}
		if answerMatches(q, submitted) {
			result.Score += q.Points
		}
	}

	if result.TotalPoints > 0 {
		result.Percentage = decimal.NewFromInt(int64(result.Score) * 100).
			Div(decimal.NewFromInt(int64(result.TotalPoints))).
			Round(2)
	}
	return result
}

// answerMatches applies the per-type equality contract. Every type compares
// the submitted value against the canonical answer after trimming: MCQ
// submissions carry the selected option index as a string, NUMERIC values
// are matched literally (no tolerance), TEXT and CODE require a verbatim
// match.
func answerMatches(q model.Question, submitted string) bool {
	got := strings.TrimSpace(submitted)
	want := strings.TrimSpace(q.CorrectAnswer)
	if got == "" {
		return false
	}
	switch q.Type {
	case model.QuestionMCQ, model.QuestionNumeric, model.QuestionText, model.QuestionCode:
		return got == want
	default:
		return false
	}
}
