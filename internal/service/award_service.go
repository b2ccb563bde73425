package service

import (
	"fmt"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/ardalabs/olympiad-engine/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// AwardService manages physical-prize delivery records after distribution:
// the address-capture callback and the shipping transition.
type AwardService interface {
	RecordDeliveryAddress(awardID uint, address dto.DeliveryAddressRequest) (*dto.AwardDTO, error)
	MarkShipped(awardID uint) (*dto.AwardDTO, error)
	ListByOlympiad(olympiadID uint) ([]dto.AwardDTO, error)
}

type awardService struct {
	awardRepo repository.AwardRepository
}

func NewAwardService(awardRepo repository.AwardRepository) AwardService {
	return &awardService{awardRepo: awardRepo}
}

func (s *awardService) RecordDeliveryAddress(awardID uint, address dto.DeliveryAddressRequest) (*dto.AwardDTO, error) {
	award, err := s.awardRepo.FindByID(awardID)
	if err != nil {
		return nil, fmt.Errorf("award %d: %w", awardID, err)
	}
	if award.Status != model.AwardContacted {
		return nil, apperr.ErrConflict
	}

	award.Region = address.Region
	award.City = address.City
	award.Address = address.Address
	award.Phone = address.Phone
	award.Status = model.AwardAddressReceived
	if err := s.awardRepo.Save(award); err != nil {
		return nil, fmt.Errorf("saving delivery address: %w", err)
	}

	log.Info().Uint("awardID", awardID).Msg("Delivery address recorded for award")
	return toAwardDTO(award), nil
}

func (s *awardService) MarkShipped(awardID uint) (*dto.AwardDTO, error) {
	ok, err := s.awardRepo.TransitionStatus(awardID, model.AwardAddressReceived, model.AwardShipped)
	if err != nil {
		return nil, fmt.Errorf("shipping award %d: %w", awardID, err)
	}
	if !ok {
		return nil, apperr.ErrConflict
	}
	award, err := s.awardRepo.FindByID(awardID)
	if err != nil {
		return nil, err
	}
	return toAwardDTO(award), nil
}

func (s *awardService) ListByOlympiad(olympiadID uint) ([]dto.AwardDTO, error) {
	awards, err := s.awardRepo.FindByOlympiad(olympiadID)
	if err != nil {
		return nil, fmt.Errorf("listing awards for olympiad %d: %w", olympiadID, err)
	}
	out := make([]dto.AwardDTO, 0, len(awards))
	for i := range awards {
		out = append(out, *toAwardDTO(&awards[i]))
	}
	return out, nil
}

func toAwardDTO(award *model.AwardRecord) *dto.AwardDTO {
	var out dto.AwardDTO
	if err := copier.Copy(&out, award); err != nil {
		log.Error().Err(err).Uint("awardID", award.ID).Msg("Failed to copy award to DTO")
	}
	out.Status = string(award.Status)
	return &out
}
