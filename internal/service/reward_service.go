package service

import (
	"fmt"

	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/ledger"
	"github.com/ardalabs/olympiad-engine/internal/metrics"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/ardalabs/olympiad-engine/internal/notify"
	"github.com/ardalabs/olympiad-engine/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RewardService converts a finished olympiad's ranking into prize grants
// exactly once. The olympiad's reward status doubles as the idempotency and
// mutual-exclusion flag; individual grants are additionally idempotent per
// (olympiad, user) so a FAILED run can be re-triggered safely.
type RewardService interface {
	Distribute(olympiadID uint) error
}

type rewardService struct {
	olympiadRepo repository.OlympiadRepository
	awardRepo    repository.AwardRepository
	leaderboard  LeaderboardService
	accounts     ledger.Ledger
	notifier     notify.Notifier
}

func NewRewardService(
	olympiadRepo repository.OlympiadRepository,
	awardRepo repository.AwardRepository,
	leaderboard LeaderboardService,
	accounts ledger.Ledger,
	notifier notify.Notifier,
) RewardService {
	return &rewardService{
		olympiadRepo: olympiadRepo,
		awardRepo:    awardRepo,
		leaderboard:  leaderboard,
		accounts:     accounts,
		notifier:     notifier,
	}
}

func (s *rewardService) Distribute(olympiadID uint) error {
	// Locks the olympiad row and flips reward status to IN_PROGRESS;
	// COMPLETED and concurrent runs are rejected here.
	if err := s.olympiadRepo.ClaimRewardRun(olympiadID); err != nil {
		return err
	}

	if err := s.distribute(olympiadID); err != nil {
		if setErr := s.olympiadRepo.SetRewardStatus(olympiadID, model.RewardFailed); setErr != nil {
			log.Error().Err(setErr).Uint("olympiadID", olympiadID).Msg("Failed to mark reward run FAILED")
		}
		log.Error().Err(err).Uint("olympiadID", olympiadID).Msg("Reward distribution failed")
		return fmt.Errorf("distributing rewards for olympiad %d: %w", olympiadID, err)
	}

	if err := s.olympiadRepo.SetRewardStatus(olympiadID, model.RewardCompleted); err != nil {
		return fmt.Errorf("marking reward run completed: %w", err)
	}
	return nil
}

func (s *rewardService) distribute(olympiadID uint) error {
	olympiad, err := s.olympiadRepo.FindByIDWithPrizes(olympiadID)
	if err != nil {
		return fmt.Errorf("loading olympiad: %w", err)
	}
	if len(olympiad.Prizes) == 0 {
		log.Info().Uint("olympiadID", olympiadID).Msg("No prizes defined, nothing to distribute")
		return nil
	}

	rankings, err := s.leaderboard.Rank(olympiadID)
	if err != nil {
		return fmt.Errorf("computing ranking: %w", err)
	}

	granted := 0
	for _, entrant := range rankings {
		for i := range olympiad.Prizes {
			prize := &olympiad.Prizes[i]
			if !prizeMatches(prize, entrant) {
				continue
			}
			if err := s.grant(olympiad, prize, entrant); err != nil {
				return fmt.Errorf("granting prize %d to user %d: %w", prize.ID, entrant.UserID, err)
			}
			granted++
		}
	}

	log.Info().Uint("olympiadID", olympiadID).Int("grants", granted).Msg("Reward distribution completed")
	return nil
}

// prizeMatches applies the closed strategy set: TOP_N targets one exact rank
// position, THRESHOLD targets every entrant at or above a percentage floor.
func prizeMatches(prize *model.PrizeDefinition, entrant dto.LeaderboardEntry) bool {
	switch prize.Strategy {
	case model.StrategyTopN:
		return entrant.Rank == uint(prize.TargetValue)
	case model.StrategyThreshold:
		return entrant.Percentage.GreaterThanOrEqual(decimal.NewFromInt(int64(prize.TargetValue)))
	default:
		return false
	}
}

func (s *rewardService) grant(olympiad *model.Olympiad, prize *model.PrizeDefinition, entrant dto.LeaderboardEntry) error {
	switch prize.Type {
	case model.PrizeCurrency:
		reference := fmt.Sprintf("olympiad:%d:user:%d:prize:%d", olympiad.ID, entrant.UserID, prize.ID)
		txID, err := s.accounts.Credit(entrant.UserID, prize.Amount, "Reward for "+olympiad.Title, reference)
		if err != nil {
			return err
		}
		metrics.RewardsGranted.WithLabelValues(string(model.PrizeCurrency)).Inc()
		log.Info().Str("txID", txID).Uint("userID", entrant.UserID).Str("amount", prize.Amount.String()).
			Msg("Currency prize credited")
		s.notifier.Send(entrant.UserID, fmt.Sprintf(
			"🎉 <b>Congratulations!</b>\n\nYou won <b>%s %s</b> in <b>%s</b>! 🪙\nYour balance has been topped up.",
			prize.Amount.StringFixed(0), olympiad.Currency, olympiad.Title,
		))
		return nil

	case model.PrizeExperience:
		reference := fmt.Sprintf("olympiad:%d:user:%d:prize:%d", olympiad.ID, entrant.UserID, prize.ID)
		if err := s.accounts.AddExperience(entrant.UserID, int(prize.Amount.IntPart()), "Reward for "+olympiad.Title, reference); err != nil {
			return err
		}
		metrics.RewardsGranted.WithLabelValues(string(model.PrizeExperience)).Inc()
		s.notifier.Send(entrant.UserID, fmt.Sprintf(
			"🎉 <b>Congratulations!</b>\n\nYou earned <b>%s XP</b> in <b>%s</b>! 🚀",
			prize.Amount.StringFixed(0), olympiad.Title,
		))
		return nil

	case model.PrizePhysical:
		return s.grantPhysical(olympiad, prize, entrant)

	default:
		return fmt.Errorf("unknown prize type %q", prize.Type)
	}
}

func (s *rewardService) grantPhysical(olympiad *model.Olympiad, prize *model.PrizeDefinition, entrant dto.LeaderboardEntry) error {
	// A winner receives at most one physical award per olympiad no matter
	// how many threshold tiers matched.
	exists, err := s.awardRepo.Exists(olympiad.ID, entrant.UserID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	award := &model.AwardRecord{
		OlympiadID:   olympiad.ID,
		UserID:       entrant.UserID,
		PrizeID:      prize.ID,
		RankPosition: int(entrant.Rank),
		Status:       model.AwardPending,
	}
	if err := s.awardRepo.Create(award); err != nil {
		return err
	}
	metrics.RewardsGranted.WithLabelValues(string(model.PrizePhysical)).Inc()

	delivered := s.notifier.Send(entrant.UserID, fmt.Sprintf(
		"🏆 <b>You won a prize!</b>\n\n<b>%s</b> — %s\n\nPlease reply with your delivery address so we can ship it.",
		prize.Name, olympiad.Title,
	))
	if delivered {
		award.Status = model.AwardContacted
		if err := s.awardRepo.Save(award); err != nil {
			return err
		}
	}
	return nil
}
