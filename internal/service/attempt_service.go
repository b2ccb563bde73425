package service

import (
	"fmt"
	"time"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/ledger"
	"github.com/ardalabs/olympiad-engine/internal/metrics"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/ardalabs/olympiad-engine/internal/notify"
	"github.com/ardalabs/olympiad-engine/internal/repository"
	"github.com/rs/zerolog/log"
)

// AttemptService owns the lifecycle of one user's attempt at one olympiad:
// NONE → IN_PROGRESS → {COMPLETED, DISQUALIFIED}. Time-based transitions
// (window checks, stale-attempt reclamation) are evaluated lazily at the
// next call, never by a background timer.
type AttemptService interface {
	Start(userID, olympiadID uint) (*dto.StartAttemptResponse, error)
	SubmitAnswer(userID, olympiadID, questionID uint, value string) (*dto.AttemptDTO, error)
	Finish(userID, olympiadID uint, reportedTabSwitches int) (*dto.AttemptDTO, error)
}

type attemptService struct {
	olympiadRepo     repository.OlympiadRepository
	registrationRepo repository.RegistrationRepository
	attemptRepo      repository.AttemptRepository
	questionRepo     repository.QuestionRepository
	scoring          ScoringService
	accounts         ledger.Ledger
	notifier         notify.Notifier

	now func() time.Time
}

func NewAttemptService(
	olympiadRepo repository.OlympiadRepository,
	registrationRepo repository.RegistrationRepository,
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	scoring ScoringService,
	accounts ledger.Ledger,
	notifier notify.Notifier,
) AttemptService {
	return &attemptService{
		olympiadRepo:     olympiadRepo,
		registrationRepo: registrationRepo,
		attemptRepo:      attemptRepo,
		questionRepo:     questionRepo,
		scoring:          scoring,
		accounts:         accounts,
		notifier:         notifier,
		now:              time.Now,
	}
}

func (s *attemptService) Start(userID, olympiadID uint) (*dto.StartAttemptResponse, error) {
	olympiad, err := s.olympiadRepo.FindByID(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}

	now := s.now()
	// An operator pinning the status to ONGOING overrides the schedule window.
	if olympiad.Status != model.OlympiadOngoing {
		if olympiad.StartDate != nil && now.Before(*olympiad.StartDate) {
			return nil, apperr.ErrNotStarted
		}
		if olympiad.EndDate != nil && now.After(*olympiad.EndDate) {
			return nil, apperr.ErrFinished
		}
	}

	registered, err := s.registrationRepo.Exists(userID, olympiadID)
	if err != nil {
		return nil, fmt.Errorf("checking registration: %w", err)
	}
	if !registered {
		return nil, apperr.ErrNotRegistered
	}

	attempt, err := s.attemptRepo.FindByUserAndOlympiad(userID, olympiadID)
	switch {
	case err == nil && attempt.Terminal():
		if olympiad.MaxAttempts <= 1 {
			return nil, apperr.ErrAlreadySubmitted
		}
		// Retry allowed: the (user, olympiad) identity is reused by deleting
		// the prior instance and creating a fresh one.
		if attempt, err = s.recreate(attempt, userID, olympiadID); err != nil {
			return nil, err
		}
	case err == nil && attempt.Expired(now, olympiad.DurationMinutes):
		// Stale-attempt reclamation: the expired run is discarded, not resumed.
		log.Info().Uint("attemptID", attempt.ID).Uint("userID", userID).Msg("Reclaiming expired attempt")
		if attempt, err = s.recreate(attempt, userID, olympiadID); err != nil {
			return nil, err
		}
	case err == nil:
		// Resume the live attempt.
	default:
		attempt = &model.Attempt{
			UserID:     userID,
			OlympiadID: olympiadID,
			Status:     model.AttemptInProgress,
			Answers:    model.AnswerMap{},
			StartedAt:  now,
		}
		if err := s.attemptRepo.Create(attempt); err != nil {
			return nil, fmt.Errorf("creating attempt: %w", err)
		}
		metrics.AttemptsStarted.Inc()
	}

	duration := time.Duration(olympiad.DurationMinutes) * time.Minute
	deadline := attempt.StartedAt.Add(duration)
	remaining := int(deadline.Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	return &dto.StartAttemptResponse{
		Attempt:          toAttemptDTO(attempt),
		DeadlineAt:       deadline,
		RemainingSeconds: remaining,
	}, nil
}

func (s *attemptService) recreate(old *model.Attempt, userID, olympiadID uint) (*model.Attempt, error) {
	if err := s.attemptRepo.Delete(old.ID); err != nil {
		return nil, fmt.Errorf("deleting stale attempt %d: %w", old.ID, err)
	}
	attempt := &model.Attempt{
		UserID:     userID,
		OlympiadID: olympiadID,
		Status:     model.AttemptInProgress,
		Answers:    model.AnswerMap{},
		StartedAt:  s.now(),
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("recreating attempt: %w", err)
	}
	metrics.AttemptsStarted.Inc()
	return attempt, nil
}

func (s *attemptService) SubmitAnswer(userID, olympiadID, questionID uint, value string) (*dto.AttemptDTO, error) {
	attempt, err := s.attemptRepo.FindByUserAndOlympiad(userID, olympiadID)
	if err != nil {
		return nil, fmt.Errorf("attempt for user %d olympiad %d: %w", userID, olympiadID, err)
	}
	if attempt.Terminal() {
		return nil, apperr.ErrAlreadySubmitted
	}

	if attempt.Answers == nil {
		attempt.Answers = model.AnswerMap{}
	}
	// Last write wins per question.
	attempt.Answers[questionID] = value
	if err := s.attemptRepo.UpdateAnswers(attempt); err != nil {
		return nil, fmt.Errorf("saving answer: %w", err)
	}

	out := toAttemptDTO(attempt)
	return &out, nil
}

func (s *attemptService) Finish(userID, olympiadID uint, reportedTabSwitches int) (*dto.AttemptDTO, error) {
	attempt, err := s.attemptRepo.FindByUserAndOlympiad(userID, olympiadID)
	if err != nil {
		return nil, fmt.Errorf("attempt for user %d olympiad %d: %w", userID, olympiadID, err)
	}
	if attempt.Terminal() {
		// Idempotent: a repeated finish returns the recorded terminal result.
		out := toAttemptDTO(attempt)
		return &out, nil
	}

	olympiad, err := s.olympiadRepo.FindByIDWithQuestions(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}

	// Anti-cheat verdict. The score is computed either way so disqualified
	// attempts still carry it for audit.
	verdict := model.AttemptCompleted
	reason := ""
	if olympiad.TabSwitchLimit > 0 && reportedTabSwitches > olympiad.TabSwitchLimit {
		verdict = model.AttemptDisqualified
		reason = fmt.Sprintf("tab switch limit exceeded (%d > %d)", reportedTabSwitches, olympiad.TabSwitchLimit)
	}

	graded := s.scoring.Score(olympiad.Questions, attempt.Answers)

	attempt.Status = verdict
	attempt.DisqualifiedReason = reason
	attempt.Score = graded.Score
	attempt.Percentage = graded.Percentage
	attempt.TabSwitchCount = reportedTabSwitches
	attempt.TimeTakenSeconds = int(s.now().Sub(attempt.StartedAt).Seconds())

	ok, err := s.attemptRepo.FinishIfInProgress(attempt)
	if err != nil {
		return nil, fmt.Errorf("finishing attempt %d: %w", attempt.ID, err)
	}
	if !ok {
		// A concurrent finish won; the caller should re-fetch.
		return nil, apperr.ErrConflict
	}

	if verdict == model.AttemptCompleted {
		metrics.AttemptsFinished.Inc()
		if olympiad.XPReward > 0 {
			reference := fmt.Sprintf("olympiad:%d:user:%d:participation", olympiadID, userID)
			if err := s.accounts.AddExperience(userID, olympiad.XPReward, "Olympiad participation: "+olympiad.Title, reference); err != nil {
				// Participation XP failure is logged, not surfaced: the
				// terminal result is already recorded.
				log.Error().Err(err).Uint("userID", userID).Uint("olympiadID", olympiadID).Msg("Participation XP grant failed")
			}
		}
		msg := fmt.Sprintf(
			"🏁 <b>%s finished!</b>\n\n📊 Your result: %d points (%s%%)\n⏱ Time: %d min",
			olympiad.Title, attempt.Score, attempt.Percentage.StringFixed(1), attempt.TimeTakenSeconds/60,
		)
		s.notifier.Send(userID, msg)
	} else {
		metrics.AttemptsDisqualified.Inc()
		log.Warn().Uint("userID", userID).Uint("olympiadID", olympiadID).
			Int("tabSwitches", reportedTabSwitches).Msg("Attempt disqualified by anti-cheat")
	}

	out := toAttemptDTO(attempt)
	return &out, nil
}
