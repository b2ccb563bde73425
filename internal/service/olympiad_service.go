package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/ardalabs/olympiad-engine/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// OlympiadService covers the admin lifecycle (create, publish, question
// replacement) and the participant-facing catalog views.
type OlympiadService interface {
	Create(req dto.CreateOlympiadRequest) (*model.Olympiad, error)
	List() ([]dto.OlympiadSummaryDTO, error)
	Details(olympiadID uint, userID uint) (*dto.OlympiadDetailDTO, error)
	// Publish pins the status to PUBLISHED, stamps the result time, and
	// triggers reward distribution when the olympiad is set to auto-reward.
	Publish(olympiadID uint) (*model.Olympiad, error)
	// ReplaceQuestions swaps the question set; rejected once the olympiad
	// has left DRAFT and anyone has registered.
	ReplaceQuestions(olympiadID uint, req dto.ReplaceQuestionsRequest) error
}

type olympiadService struct {
	olympiadRepo     repository.OlympiadRepository
	questionRepo     repository.QuestionRepository
	registrationRepo repository.RegistrationRepository
	rewards          RewardService

	now func() time.Time
}

func NewOlympiadService(
	olympiadRepo repository.OlympiadRepository,
	questionRepo repository.QuestionRepository,
	registrationRepo repository.RegistrationRepository,
	rewards RewardService,
) OlympiadService {
	return &olympiadService{
		olympiadRepo:     olympiadRepo,
		questionRepo:     questionRepo,
		registrationRepo: registrationRepo,
		rewards:          rewards,
		now:              time.Now,
	}
}

func (s *olympiadService) Create(req dto.CreateOlympiadRequest) (*model.Olympiad, error) {
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(req.Title)
	if err != nil {
		return nil, err
	}

	olympiad := &model.Olympiad{
		Title:              req.Title,
		Slug:               slug,
		Description:        req.Description,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		DurationMinutes:    req.DurationMinutes,
		MaxParticipants:    req.MaxParticipants,
		Price:              req.Price,
		Currency:           req.Currency,
		MaxAttempts:        req.MaxAttempts,
		TabSwitchLimit:     req.TabSwitchLimit,
		RequiredCamera:     req.RequiredCamera,
		RequiredFullScreen: req.RequiredFullScreen,
		DisableCopyPaste:   req.DisableCopyPaste,
		XPReward:           req.XPReward,
		AutoReward:         req.AutoReward,
		Status:             model.OlympiadDraft,
		RewardStatus:       model.RewardNone,
		Questions:          questions,
	}
	if olympiad.DurationMinutes == 0 {
		olympiad.DurationMinutes = 60
	}
	if olympiad.MaxAttempts == 0 {
		olympiad.MaxAttempts = 1
	}
	if olympiad.Currency == "" {
		olympiad.Currency = "UZS"
	}

	for _, p := range req.Prizes {
		olympiad.Prizes = append(olympiad.Prizes, model.PrizeDefinition{
			Name:        p.Name,
			Description: p.Description,
			Type:        model.PrizeType(p.Type),
			Strategy:    model.PrizeStrategy(p.Strategy),
			Amount:      p.Amount,
			TargetValue: p.TargetValue,
		})
	}

	if err := s.olympiadRepo.Create(olympiad); err != nil {
		return nil, fmt.Errorf("creating olympiad: %w", err)
	}
	log.Info().Uint("olympiadID", olympiad.ID).Str("slug", olympiad.Slug).Msg("Olympiad created")
	return olympiad, nil
}

func (s *olympiadService) List() ([]dto.OlympiadSummaryDTO, error) {
	olympiads, err := s.olympiadRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing olympiads: %w", err)
	}

	now := s.now()
	summaries := make([]dto.OlympiadSummaryDTO, 0, len(olympiads))
	for i := range olympiads {
		o := &olympiads[i]
		var summary dto.OlympiadSummaryDTO
		if err := copier.Copy(&summary, o); err != nil {
			log.Error().Err(err).Uint("olympiadID", o.ID).Msg("Failed to copy olympiad summary")
			continue
		}
		summary.Status = string(o.EffectiveStatus(now))
		count, err := s.registrationRepo.CountByOlympiad(o.ID)
		if err == nil {
			summary.ParticipantsCnt = count
		}
		qCount, err := s.questionRepo.CountByOlympiad(o.ID)
		if err == nil {
			summary.QuestionCount = int(qCount)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *olympiadService) Details(olympiadID uint, userID uint) (*dto.OlympiadDetailDTO, error) {
	olympiad, err := s.olympiadRepo.FindByIDWithPrizes(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}

	var detail dto.OlympiadDetailDTO
	if err := copier.Copy(&detail, olympiad); err != nil {
		return nil, fmt.Errorf("preparing olympiad details: %w", err)
	}
	detail.Status = string(olympiad.EffectiveStatus(s.now()))

	// The public question DTO never carries the canonical answer.
	detail.Questions = make([]dto.QuestionPublicDTO, 0, len(olympiad.Questions))
	for _, q := range olympiad.Questions {
		detail.Questions = append(detail.Questions, dto.QuestionPublicDTO{
			ID:               q.ID,
			Text:             q.Text,
			Type:             string(q.Type),
			Options:          q.Options,
			Points:           q.Points,
			TimeLimitSeconds: q.TimeLimitSeconds,
			OrderIndex:       q.OrderIndex,
		})
	}
	detail.Prizes = make([]dto.PrizeDTO, 0, len(olympiad.Prizes))
	for _, p := range olympiad.Prizes {
		detail.Prizes = append(detail.Prizes, dto.PrizeDTO{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Type:        string(p.Type),
			Strategy:    string(p.Strategy),
			Amount:      p.Amount,
			TargetValue: p.TargetValue,
		})
	}

	if userID != 0 {
		registered, err := s.registrationRepo.Exists(userID, olympiadID)
		if err == nil {
			detail.IsRegistered = registered
		}
	}
	return &detail, nil
}

func (s *olympiadService) Publish(olympiadID uint) (*model.Olympiad, error) {
	olympiad, err := s.olympiadRepo.FindByID(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}

	now := s.now()
	olympiad.Status = model.OlympiadPublished
	olympiad.ResultTime = &now
	if err := s.olympiadRepo.Save(olympiad); err != nil {
		return nil, fmt.Errorf("publishing olympiad: %w", err)
	}

	if olympiad.AutoReward {
		if err := s.rewards.Distribute(olympiadID); err != nil {
			// The publish itself stands; the reward status records the failure
			// for the operator to inspect and re-trigger.
			log.Error().Err(err).Uint("olympiadID", olympiadID).Msg("Auto reward distribution failed after publish")
		}
	}
	return olympiad, nil
}

func (s *olympiadService) ReplaceQuestions(olympiadID uint, req dto.ReplaceQuestionsRequest) error {
	olympiad, err := s.olympiadRepo.FindByID(olympiadID)
	if err != nil {
		return fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}

	if olympiad.Status != model.OlympiadDraft {
		count, err := s.registrationRepo.CountByOlympiad(olympiadID)
		if err != nil {
			return fmt.Errorf("counting registrations: %w", err)
		}
		if count > 0 {
			return apperr.ErrImmutableQuestions
		}
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return err
	}
	return s.questionRepo.ReplaceForOlympiad(olympiadID, questions)
}

func buildQuestions(reqs []dto.QuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	for i, q := range reqs {
		qType := model.QuestionType(q.Type)
		var options datatypes.JSON
		if qType == model.QuestionMCQ {
			if len(q.Options) < 2 {
				return nil, fmt.Errorf("question %d: MCQ requires at least two options", i+1)
			}
			raw, err := json.Marshal(q.Options)
			if err != nil {
				return nil, fmt.Errorf("question %d: encoding options: %w", i+1, err)
			}
			options = datatypes.JSON(raw)
		}
		order := q.OrderIndex
		if order == 0 {
			order = i + 1
		}
		questions = append(questions, model.Question{
			Text:             q.Text,
			Type:             qType,
			Options:          options,
			CorrectAnswer:    q.CorrectAnswer,
			Explanation:      q.Explanation,
			Points:           q.Points,
			TimeLimitSeconds: q.TimeLimitSeconds,
			OrderIndex:       order,
		})
	}
	return questions, nil
}

var slugStripper = regexp.MustCompile(`[^a-z0-9]+`)

func (s *olympiadService) uniqueSlug(title string) (string, error) {
	base := strings.Trim(slugStripper.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if base == "" {
		base = "olympiad"
	}
	slug := base
	for counter := 1; ; counter++ {
		exists, err := s.olympiadRepo.SlugExists(slug)
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
