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

type leaderboardFixture struct {
	olympiads *memOlympiadRepo
	attempts  *memAttemptRepo
	redis     *miniredis.Miniredis
	svc       *leaderboardService
	now       time.Time
}

func newLeaderboardFixture(t *testing.T) *leaderboardFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	f := &leaderboardFixture{
		olympiads: newMemOlympiadRepo(),
		attempts:  newMemAttemptRepo(),
		redis:     mr,
		now:       time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewLeaderboardService(f.olympiads, f.attempts, client).(*leaderboardService)
	svc.now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func (f *leaderboardFixture) seedOlympiad(t *testing.T, status model.OlympiadStatus) *model.Olympiad {
	t.Helper()
	o := &model.Olympiad{
		Title:  "Autumn Physics Cup",
		Status: status,
		Questions: []model.Question{
			{ID: 1, Points: 5},
			{ID: 2, Points: 5},
		},
	}
	if err := f.olympiads.Create(o); err != nil {
		t.Fatal(err)
	}
	return o
}

func completed(id, userID, olympiadID uint, score, seconds int) model.Attempt {
	return model.Attempt{
		ID: id, UserID: userID, OlympiadID: olympiadID,
		Status:           model.AttemptCompleted,
		Score:            score,
		Percentage:       decimal.NewFromInt(int64(score) * 10),
		TimeTakenSeconds: seconds,
	}
}

func TestRankOrdering(t *testing.T) {
	f := newLeaderboardFixture(t)
	o := f.seedOlympiad(t, model.OlympiadPublished)

	f.attempts.seed(completed(1, 101, o.ID, 5, 900))
	f.attempts.seed(completed(2, 102, o.ID, 10, 1200))
	// Same score as user 102 but faster.
	f.attempts.seed(completed(3, 103, o.ID, 10, 800))
	// Same score and time as user 101; the earlier attempt ID ranks first.
	f.attempts.seed(completed(4, 104, o.ID, 5, 900))
	// Disqualified attempts never rank.
	f.attempts.seed(model.Attempt{ID: 5, UserID: 105, OlympiadID: o.ID, Status: model.AttemptDisqualified, Score: 10})

	entries, err := f.svc.Rank(o.ID)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	wantOrder := []uint{103, 102, 101, 104}
	if len(entries) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantOrder))
	}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("rank %d: user = %d, want %d", i+1, entries[i].UserID, want)
		}
		if entries[i].Rank != uint(i+1) {
			t.Errorf("entry %d: rank = %d, want %d (ranks must stay distinct)", i, entries[i].Rank, i+1)
		}
		if entries[i].MaxScore != 10 {
			t.Errorf("entry %d: max score = %d, want 10", i, entries[i].MaxScore)
		}
	}
}

func TestLeaderboardVisibility(t *testing.T) {
	f := newLeaderboardFixture(t)
	o := f.seedOlympiad(t, model.OlympiadChecking)
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))

	if _, err := f.svc.Leaderboard(o.ID, false); !errors.Is(err, apperr.ErrResultsNotOpen) {
		t.Errorf("participant before publish: err = %v, want ErrResultsNotOpen", err)
	}

	// Staff can always inspect the board.
	board, err := f.svc.Leaderboard(o.ID, true)
	if err != nil {
		t.Fatalf("staff Leaderboard: %v", err)
	}
	if board.ParticipantsCount != 1 {
		t.Errorf("ParticipantsCount = %d, want 1", board.ParticipantsCount)
	}

	// A passed result time opens the board without an explicit publish.
	resultTime := f.now.Add(-time.Minute)
	o.ResultTime = &resultTime
	if err := f.olympiads.Save(o); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Leaderboard(o.ID, false); err != nil {
		t.Errorf("participant after result time: %v", err)
	}
}

func TestLeaderboardStats(t *testing.T) {
	f := newLeaderboardFixture(t)
	o := f.seedOlympiad(t, model.OlympiadPublished)
	f.attempts.seed(completed(1, 101, o.ID, 10, 1200))
	f.attempts.seed(completed(2, 102, o.ID, 5, 700))

	board, err := f.svc.Leaderboard(o.ID, false)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if board.AverageScore != 7.5 {
		t.Errorf("AverageScore = %v, want 7.5", board.AverageScore)
	}
	if board.BestTimeSeconds != 700 {
		t.Errorf("BestTimeSeconds = %d, want 700", board.BestTimeSeconds)
	}
}

func TestLeaderboardCaching(t *testing.T) {
	f := newLeaderboardFixture(t)
	o := f.seedOlympiad(t, model.OlympiadPublished)
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))

	first, err := f.svc.Leaderboard(o.ID, false)
	if err != nil {
		t.Fatalf("first Leaderboard: %v", err)
	}
	if !f.redis.Exists("olympiad:leaderboard:1") {
		t.Fatal("expected the open board to be cached")
	}

	// New data does not appear while the cached board is live.
	f.attempts.seed(completed(2, 102, o.ID, 8, 500))
	second, err := f.svc.Leaderboard(o.ID, false)
	if err != nil {
		t.Fatalf("second Leaderboard: %v", err)
	}
	if second.ParticipantsCount != first.ParticipantsCount {
		t.Errorf("cached board changed: %d vs %d participants", second.ParticipantsCount, first.ParticipantsCount)
	}

	// Once the key expires the fresh data shows up.
	f.redis.FastForward(time.Minute)
	third, err := f.svc.Leaderboard(o.ID, false)
	if err != nil {
		t.Fatalf("third Leaderboard: %v", err)
	}
	if third.ParticipantsCount != 2 {
		t.Errorf("ParticipantsCount after expiry = %d, want 2", third.ParticipantsCount)
	}
}

func TestLeaderboardClosedBoardNotCached(t *testing.T) {
	f := newLeaderboardFixture(t)
	o := f.seedOlympiad(t, model.OlympiadChecking)
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))

	if _, err := f.svc.Leaderboard(o.ID, true); err != nil {
		t.Fatalf("staff Leaderboard: %v", err)
	}
	if f.redis.Exists("olympiad:leaderboard:1") {
		t.Error("a board that is not open to participants must not be cached")
	}
}

func TestMyResult(t *testing.T) {
	f := newLeaderboardFixture(t)
	o := f.seedOlympiad(t, model.OlympiadChecking)
	f.attempts.seed(completed(1, 101, o.ID, 10, 600))
	f.attempts.seed(completed(2, 102, o.ID, 5, 700))

	t.Run("waiting before results open", func(t *testing.T) {
		result, err := f.svc.MyResult(101, o.ID)
		if err != nil {
			t.Fatalf("MyResult: %v", err)
		}
		if result.Status != "WAITING_RESULTS" {
			t.Errorf("status = %s, want WAITING_RESULTS", result.Status)
		}
		if result.Attempt != nil {
			t.Error("attempt details must stay hidden until results open")
		}
	})

	o.Status = model.OlympiadPublished
	if err := f.olympiads.Save(o); err != nil {
		t.Fatal(err)
	}

	t.Run("rank once open", func(t *testing.T) {
		result, err := f.svc.MyResult(102, o.ID)
		if err != nil {
			t.Fatalf("MyResult: %v", err)
		}
		if result.Status != "RESULTS_OPEN" {
			t.Errorf("status = %s, want RESULTS_OPEN", result.Status)
		}
		if result.Rank != 2 {
			t.Errorf("rank = %d, want 2", result.Rank)
		}
		if result.Attempt == nil || result.Attempt.Score != 5 {
			t.Errorf("attempt = %+v, want score 5", result.Attempt)
		}
	})

	t.Run("no attempt", func(t *testing.T) {
		if _, err := f.svc.MyResult(999, o.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}
