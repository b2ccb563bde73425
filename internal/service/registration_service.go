package service

import (
	"fmt"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/ardalabs/olympiad-engine/internal/notify"
	"github.com/ardalabs/olympiad-engine/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// RegistrationService gates who may attempt an olympiad: uniqueness,
// capacity and the payment precondition are all checked here.
type RegistrationService interface {
	Register(userID, olympiadID uint) (*model.Registration, error)
	ListByOlympiad(olympiadID uint) ([]model.Registration, error)
}

type registrationService struct {
	olympiadRepo     repository.OlympiadRepository
	registrationRepo repository.RegistrationRepository
	payments         repository.PaymentChecker
	notifier         notify.Notifier
}

func NewRegistrationService(
	olympiadRepo repository.OlympiadRepository,
	registrationRepo repository.RegistrationRepository,
	payments repository.PaymentChecker,
	notifier notify.Notifier,
) RegistrationService {
	return &registrationService{
		olympiadRepo:     olympiadRepo,
		registrationRepo: registrationRepo,
		payments:         payments,
		notifier:         notifier,
	}
}

func (s *registrationService) Register(userID, olympiadID uint) (*model.Registration, error) {
	olympiad, err := s.olympiadRepo.FindByID(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("olympiad %d: %w", olympiadID, err)
	}

	exists, err := s.registrationRepo.Exists(userID, olympiadID)
	if err != nil {
		return nil, fmt.Errorf("checking registration: %w", err)
	}
	if exists {
		return nil, apperr.ErrAlreadyRegistered
	}

	if olympiad.MaxParticipants != nil {
		count, err := s.registrationRepo.CountByOlympiad(olympiadID)
		if err != nil {
			return nil, fmt.Errorf("counting registrations: %w", err)
		}
		if count >= int64(*olympiad.MaxParticipants) {
			return nil, apperr.ErrFull
		}
	}

	if olympiad.Price.Sign() > 0 {
		paid, err := s.payments.HasCompletedPayment(userID, olympiadID)
		if err != nil {
			return nil, fmt.Errorf("checking payment: %w", err)
		}
		if !paid {
			return nil, apperr.ErrPaymentRequired
		}
	}

	registration := &model.Registration{
		UserID:     userID,
		OlympiadID: olympiadID,
		IsPaid:     olympiad.Price.IsZero(),
	}
	if err := s.registrationRepo.Create(registration); err != nil {
		return nil, fmt.Errorf("creating registration: %w", err)
	}

	msg := fmt.Sprintf("✅ <b>You are registered!</b>\n\n🏆 Olympiad: %s", olympiad.Title)
	if olympiad.StartDate != nil {
		msg += fmt.Sprintf("\n📅 Starts: %s", olympiad.StartDate.Format("2006-01-02 15:04"))
	}
	s.notifier.Send(userID, msg)

	log.Info().Uint("userID", userID).Uint("olympiadID", olympiadID).Msg("User registered for olympiad")
	return registration, nil
}

func (s *registrationService) ListByOlympiad(olympiadID uint) ([]model.Registration, error) {
	return s.registrationRepo.FindByOlympiad(olympiadID)
}

// toAttemptDTO is shared by the attempt and leaderboard services.
func toAttemptDTO(attempt *model.Attempt) dto.AttemptDTO {
	var out dto.AttemptDTO
	if err := copier.Copy(&out, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy attempt to DTO")
	}
	out.Status = string(attempt.Status)
	return out
}
