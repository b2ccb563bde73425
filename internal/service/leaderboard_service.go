package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/ardalabs/olympiad-engine/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const leaderboardCacheTTL = 30 * time.Second

// LeaderboardService derives the deterministic ranking over completed
// attempts and applies the visibility policy: the public sees it only once
// the olympiad is PUBLISHED (or its result time has passed); operator roles
// see it at any time.
type LeaderboardService interface {
	// Rank returns the full ranking regardless of visibility; callers that
	// serve end users must go through Leaderboard instead.
	Rank(olympiadID uint) ([]dto.LeaderboardEntry, error)
	Leaderboard(olympiadID uint, staff bool) (*dto.LeaderboardDTO, error)
	MyResult(userID, olympiadID uint) (*dto.MyResultDTO, error)
}

type leaderboardService struct {
	olympiadRepo repository.OlympiadRepository
	attemptRepo  repository.AttemptRepository
	cache        *redis.Client

	now func() time.Time
}

func NewLeaderboardService(
	olympiadRepo repository.OlympiadRepository,
	attemptRepo repository.AttemptRepository,
	cache *redis.Client,
) LeaderboardService {
	return &leaderboardService{
		olympiadRepo: olympiadRepo,
		attemptRepo:  attemptRepo,
		cache:        cache,
		now:          time.Now,
	}
}

func (s *leaderboardService) Rank(olympiadID uint) ([]dto.LeaderboardEntry, error) {
	olympiad, err := s.olympiadRepo.FindByIDWithQuestions(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}
	return s.rank(olympiad)
}

func (s *leaderboardService) rank(olympiad *model.Olympiad) ([]dto.LeaderboardEntry, error) {
	attempts, err := s.attemptRepo.FindCompletedByOlympiad(olympiad.ID)
	if err != nil {
		return nil, fmt.Errorf("loading completed attempts: %w", err)
	}

	maxScore := 0
	for _, q := range olympiad.Questions {
		maxScore += q.Points
	}

	// Attempts arrive pre-ordered (score desc, time asc, id asc); equal
	// (score, time) pairs still get distinct successive ranks so the
	// ordering stays total.
	entries := make([]dto.LeaderboardEntry, 0, len(attempts))
	for i, a := range attempts {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:             uint(i + 1),
			UserID:           a.UserID,
			Score:            a.Score,
			MaxScore:         maxScore,
			Percentage:       a.Percentage,
			TimeTakenSeconds: a.TimeTakenSeconds,
			Status:           string(a.Status),
		})
	}
	return entries, nil
}

func (s *leaderboardService) Leaderboard(olympiadID uint, staff bool) (*dto.LeaderboardDTO, error) {
	olympiad, err := s.olympiadRepo.FindByIDWithQuestions(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}

	open := olympiad.ResultsOpen(s.now())
	if !open && !staff {
		return nil, apperr.ErrResultsNotOpen
	}

	// Published boards are hot during announcements; cache them briefly.
	cacheKey := fmt.Sprintf("olympiad:leaderboard:%d", olympiadID)
	if open && s.cache != nil {
		if raw, err := s.cache.Get(context.Background(), cacheKey).Bytes(); err == nil {
			var cached dto.LeaderboardDTO
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	entries, err := s.rank(olympiad)
	if err != nil {
		return nil, err
	}

	board := &dto.LeaderboardDTO{
		OlympiadID:        olympiadID,
		Title:             olympiad.Title,
		Status:            string(olympiad.EffectiveStatus(s.now())),
		ResultTime:        olympiad.ResultTime,
		ParticipantsCount: len(entries),
		Entries:           entries,
	}
	if len(entries) > 0 {
		total := 0
		best := entries[0].TimeTakenSeconds
		for _, e := range entries {
			total += e.Score
			if e.TimeTakenSeconds < best {
				best = e.TimeTakenSeconds
			}
		}
		board.AverageScore = float64(total) / float64(len(entries))
		board.BestTimeSeconds = best
	}

	if open && s.cache != nil {
		if raw, err := json.Marshal(board); err == nil {
			if err := s.cache.Set(context.Background(), cacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Uint("olympiadID", olympiadID).Msg("Leaderboard cache write failed")
			}
		}
	}
	return board, nil
}

func (s *leaderboardService) MyResult(userID, olympiadID uint) (*dto.MyResultDTO, error) {
	olympiad, err := s.olympiadRepo.FindByIDWithQuestions(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}

	attempt, err := s.attemptRepo.FindByUserAndOlympiad(userID, olympiadID)
	if err != nil {
		return nil, fmt.Errorf("attempt for user %d: %w", userID, err)
	}

	if !olympiad.ResultsOpen(s.now()) {
		return &dto.MyResultDTO{Status: "WAITING_RESULTS", ResultTime: olympiad.ResultTime}, nil
	}

	out := toAttemptDTO(attempt)
	result := &dto.MyResultDTO{Status: "RESULTS_OPEN", Attempt: &out}

	if attempt.Status == model.AttemptCompleted {
		entries, err := s.rank(olympiad)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.UserID == userID {
				result.Rank = int(e.Rank)
				break
			}
		}
	}
	return result, nil
}
