package service

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type rewardFixture struct {
	olympiads *memOlympiadRepo
	attempts  *memAttemptRepo
	awards    *memAwardRepo
	ledger    *memLedger
	notifier  *memNotifier
	svc       RewardService
}

func newRewardFixture(t *testing.T) *rewardFixture {
	t.Helper()
	f := &rewardFixture{
		olympiads: newMemOlympiadRepo(),
		attempts:  newMemAttemptRepo(),
		awards:    newMemAwardRepo(),
		ledger:    newMemLedger(),
		notifier:  newMemNotifier(),
	}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	leaderboard := NewLeaderboardService(f.olympiads, f.attempts, client).(*leaderboardService)
	leaderboard.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	f.svc = NewRewardService(f.olympiads, f.awards, leaderboard, f.ledger, f.notifier)
	return f
}

func (f *rewardFixture) seedOlympiad(t *testing.T, prizes []model.PrizeDefinition) *model.Olympiad {
	t.Helper()
	o := &model.Olympiad{
		Title:    "Winter Chemistry Cup",
		Currency: "UZS",
		Status:   model.OlympiadPublished,
		Questions: []model.Question{
			{ID: 1, Points: 5},
			{ID: 2, Points: 5},
		},
		Prizes: prizes,
	}
	if err := f.olympiads.Create(o); err != nil {
		t.Fatal(err)
	}
	return o
}

func TestDistributeTopNPicksFasterOnTie(t *testing.T) {
	f := newRewardFixture(t)
	o := f.seedOlympiad(t, []model.PrizeDefinition{
		{Name: "1st place", Type: model.PrizeCurrency, Strategy: model.StrategyTopN, Amount: decimal.NewFromInt(100000), TargetValue: 1},
	})
	// Equal scores; user 102 finished faster and takes rank 1.
	f.attempts.seed(completed(1, 101, o.ID, 10, 1200))
	f.attempts.seed(completed(2, 102, o.ID, 10, 800))

	if err := f.svc.Distribute(o.ID); err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	if got := f.ledger.balance(102); !got.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("winner balance = %s, want 100000", got)
	}
	if got := f.ledger.balance(101); !got.IsZero() {
		t.Errorf("runner-up balance = %s, want 0", got)
	}
	stored, err := f.olympiads.FindByID(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.RewardStatus != model.RewardCompleted {
		t.Errorf("reward status = %s, want COMPLETED", stored.RewardStatus)
	}
}

func TestDistributeThresholdXP(t *testing.T) {
	f := newRewardFixture(t)
	o := f.seedOlympiad(t, []model.PrizeDefinition{
		{Name: "80% club", Type: model.PrizeExperience, Strategy: model.StrategyThreshold, Amount: decimal.NewFromInt(200), TargetValue: 80},
	})
	f.attempts.seed(completed(1, 101, o.ID, 10, 900)) // 100%
	f.attempts.seed(completed(2, 102, o.ID, 8, 700))  // 80%, boundary included
	f.attempts.seed(completed(3, 103, o.ID, 7, 600))  // 70%, below

	if err := f.svc.Distribute(o.ID); err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	if xp := f.ledger.xp[101]; xp != 200 {
		t.Errorf("user 101 XP = %d, want 200", xp)
	}
	if xp := f.ledger.xp[102]; xp != 200 {
		t.Errorf("user 102 XP = %d, want 200 (threshold is inclusive)", xp)
	}
	if xp := f.ledger.xp[103]; xp != 0 {
		t.Errorf("user 103 XP = %d, want 0", xp)
	}
}

func TestDistributeIsIdempotent(t *testing.T) {
	f := newRewardFixture(t)
	o := f.seedOlympiad(t, []model.PrizeDefinition{
		{Name: "1st place", Type: model.PrizeCurrency, Strategy: model.StrategyTopN, Amount: decimal.NewFromInt(50000), TargetValue: 1},
	})
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))

	if err := f.svc.Distribute(o.ID); err != nil {
		t.Fatalf("first Distribute: %v", err)
	}
	err := f.svc.Distribute(o.ID)
	if !errors.Is(err, apperr.ErrAlreadyDistributed) {
		t.Fatalf("second Distribute: err = %v, want ErrAlreadyDistributed", err)
	}
	if got := f.ledger.balance(101); !got.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("balance = %s, want a single 50000 credit", got)
	}
}

func TestDistributeFailureCanBeRetriedWithoutDoubleGrant(t *testing.T) {
	f := newRewardFixture(t)
	o := f.seedOlympiad(t, []model.PrizeDefinition{
		{Name: "1st place", Type: model.PrizeCurrency, Strategy: model.StrategyTopN, Amount: decimal.NewFromInt(50000), TargetValue: 1},
		{Name: "2nd place", Type: model.PrizeCurrency, Strategy: model.StrategyTopN, Amount: decimal.NewFromInt(20000), TargetValue: 2},
	})
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))
	f.attempts.seed(completed(2, 102, o.ID, 8, 700))

	// Second credit in the run fails; the run is marked FAILED.
	f.ledger.failAfter = 1
	if err := f.svc.Distribute(o.ID); err == nil {
		t.Fatal("expected the first run to fail")
	}
	stored, err := f.olympiads.FindByID(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.RewardStatus != model.RewardFailed {
		t.Fatalf("reward status = %s, want FAILED", stored.RewardStatus)
	}

	// The retry completes; the grant that already settled is not repeated.
	if err := f.svc.Distribute(o.ID); err != nil {
		t.Fatalf("retry Distribute: %v", err)
	}
	if got := f.ledger.balance(101); !got.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("user 101 balance = %s, want exactly one 50000 credit", got)
	}
	if got := f.ledger.balance(102); !got.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("user 102 balance = %s, want 20000", got)
	}
}

func TestDistributePhysicalPrize(t *testing.T) {
	f := newRewardFixture(t)
	o := f.seedOlympiad(t, []model.PrizeDefinition{
		{Name: "Laptop", Type: model.PrizePhysical, Strategy: model.StrategyTopN, TargetValue: 1},
		{Name: "Laptop sticker pack", Type: model.PrizePhysical, Strategy: model.StrategyThreshold, TargetValue: 90},
	})
	// Rank 1 at 100% matches both physical tiers but gets one award.
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))

	if err := f.svc.Distribute(o.ID); err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	awards, err := f.awards.FindByOlympiad(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 1 {
		t.Fatalf("got %d awards, want 1 (at most one physical award per winner)", len(awards))
	}
	// The notifier delivered, so the pipeline advanced to CONTACTED.
	if awards[0].Status != model.AwardContacted {
		t.Errorf("award status = %s, want CONTACTED", awards[0].Status)
	}
	if awards[0].RankPosition != 1 {
		t.Errorf("rank position = %d, want 1", awards[0].RankPosition)
	}
}

func TestDistributePhysicalPrizeUndelivered(t *testing.T) {
	f := newRewardFixture(t)
	f.notifier.delivered = false
	o := f.seedOlympiad(t, []model.PrizeDefinition{
		{Name: "Laptop", Type: model.PrizePhysical, Strategy: model.StrategyTopN, TargetValue: 1},
	})
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))

	if err := f.svc.Distribute(o.ID); err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	awards, err := f.awards.FindByOlympiad(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 1 || awards[0].Status != model.AwardPending {
		t.Errorf("awards = %+v, want one PENDING award when the winner is unreachable", awards)
	}
}

func TestDistributeNoPrizes(t *testing.T) {
	f := newRewardFixture(t)
	o := f.seedOlympiad(t, nil)
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))

	if err := f.svc.Distribute(o.ID); err != nil {
		t.Fatalf("Distribute with no prizes: %v", err)
	}
	stored, err := f.olympiads.FindByID(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.RewardStatus != model.RewardCompleted {
		t.Errorf("reward status = %s, want COMPLETED even with nothing to grant", stored.RewardStatus)
	}
}
