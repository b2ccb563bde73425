package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/shopspring/decimal"
)

// In-memory fakes for the repository, ledger and notifier interfaces so the
// services can be exercised without a database.

type memOlympiadRepo struct {
	mu        sync.Mutex
	olympiads map[uint]*model.Olympiad
	nextID    uint
}

func newMemOlympiadRepo() *memOlympiadRepo {
	return &memOlympiadRepo{olympiads: map[uint]*model.Olympiad{}, nextID: 1}
}

func (r *memOlympiadRepo) Create(o *model.Olympiad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	for i := range o.Questions {
		o.Questions[i].ID = uint(i + 1)
		o.Questions[i].OlympiadID = o.ID
	}
	for i := range o.Prizes {
		o.Prizes[i].ID = uint(i + 1)
		o.Prizes[i].OlympiadID = o.ID
	}
	r.olympiads[o.ID] = o
	return nil
}

func (r *memOlympiadRepo) Save(o *model.Olympiad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.olympiads[o.ID] = o
	return nil
}

func (r *memOlympiadRepo) FindByID(id uint) (*model.Olympiad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.olympiads[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *memOlympiadRepo) FindByIDWithQuestions(id uint) (*model.Olympiad, error) {
	return r.FindByID(id)
}

func (r *memOlympiadRepo) FindByIDWithPrizes(id uint) (*model.Olympiad, error) {
	return r.FindByID(id)
}

func (r *memOlympiadRepo) FindAll() ([]model.Olympiad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Olympiad, 0, len(r.olympiads))
	for _, o := range r.olympiads {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memOlympiadRepo) SlugExists(slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.olympiads {
		if o.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOlympiadRepo) UpdateStatus(id uint, status model.OlympiadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.olympiads[id]
	if !ok {
		return apperr.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *memOlympiadRepo) ClaimRewardRun(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.olympiads[id]
	if !ok {
		return apperr.ErrNotFound
	}
	switch o.RewardStatus {
	case model.RewardCompleted:
		return apperr.ErrAlreadyDistributed
	case model.RewardInProgress:
		return apperr.ErrConflict
	}
	o.RewardStatus = model.RewardInProgress
	return nil
}

func (r *memOlympiadRepo) SetRewardStatus(id uint, status model.RewardStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.olympiads[id]
	if !ok {
		return apperr.ErrNotFound
	}
	o.RewardStatus = status
	return nil
}

type memQuestionRepo struct {
	olympiads *memOlympiadRepo
}

func (r *memQuestionRepo) FindByOlympiadID(olympiadID uint) ([]model.Question, error) {
	o, err := r.olympiads.FindByID(olympiadID)
	if err != nil {
		return nil, err
	}
	return o.Questions, nil
}

func (r *memQuestionRepo) CountByOlympiad(olympiadID uint) (int64, error) {
	o, err := r.olympiads.FindByID(olympiadID)
	if err != nil {
		return 0, err
	}
	return int64(len(o.Questions)), nil
}

func (r *memQuestionRepo) ReplaceForOlympiad(olympiadID uint, questions []model.Question) error {
	r.olympiads.mu.Lock()
	defer r.olympiads.mu.Unlock()
	o, ok := r.olympiads.olympiads[olympiadID]
	if !ok {
		return apperr.ErrNotFound
	}
	for i := range questions {
		questions[i].ID = uint(i + 1)
		questions[i].OlympiadID = olympiadID
	}
	o.Questions = questions
	return nil
}

type regKey struct{ userID, olympiadID uint }

type memRegistrationRepo struct {
	mu            sync.Mutex
	registrations map[regKey]*model.Registration
	nextID        uint
}

func newMemRegistrationRepo() *memRegistrationRepo {
	return &memRegistrationRepo{registrations: map[regKey]*model.Registration{}, nextID: 1}
}

func (r *memRegistrationRepo) Create(reg *model.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := regKey{reg.UserID, reg.OlympiadID}
	if _, ok := r.registrations[key]; ok {
		return fmt.Errorf("duplicate registration for user %d", reg.UserID)
	}
	reg.ID = r.nextID
	r.nextID++
	r.registrations[key] = reg
	return nil
}

func (r *memRegistrationRepo) Exists(userID, olympiadID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.registrations[regKey{userID, olympiadID}]
	return ok, nil
}

func (r *memRegistrationRepo) CountByOlympiad(olympiadID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key := range r.registrations {
		if key.olympiadID == olympiadID {
			count++
		}
	}
	return count, nil
}

func (r *memRegistrationRepo) FindByOlympiad(olympiadID uint) ([]model.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Registration
	for key, reg := range r.registrations {
		if key.olympiadID == olympiadID {
			out = append(out, *reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memAttemptRepo struct {
	mu       sync.Mutex
	attempts map[uint]*model.Attempt
	nextID   uint
}

func newMemAttemptRepo() *memAttemptRepo {
	return &memAttemptRepo{attempts: map[uint]*model.Attempt{}, nextID: 1}
}

func (r *memAttemptRepo) Create(attempt *model.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.UserID == attempt.UserID && a.OlympiadID == attempt.OlympiadID {
			return fmt.Errorf("duplicate attempt for user %d olympiad %d", attempt.UserID, attempt.OlympiadID)
		}
	}
	attempt.ID = r.nextID
	r.nextID++
	copied := *attempt
	r.attempts[attempt.ID] = &copied
	return nil
}

func (r *memAttemptRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, id)
	return nil
}

func (r *memAttemptRepo) FindByUserAndOlympiad(userID, olympiadID uint) (*model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.UserID == userID && a.OlympiadID == olympiadID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memAttemptRepo) UpdateAnswers(attempt *model.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.attempts[attempt.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	stored.Answers = attempt.Answers
	return nil
}

func (r *memAttemptRepo) FinishIfInProgress(attempt *model.Attempt) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.attempts[attempt.ID]
	if !ok || stored.Status != model.AttemptInProgress {
		return false, nil
	}
	stored.Status = attempt.Status
	stored.DisqualifiedReason = attempt.DisqualifiedReason
	stored.Score = attempt.Score
	stored.Percentage = attempt.Percentage
	stored.TabSwitchCount = attempt.TabSwitchCount
	stored.TimeTakenSeconds = attempt.TimeTakenSeconds
	return true, nil
}

func (r *memAttemptRepo) FindCompletedByOlympiad(olympiadID uint) ([]model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Attempt
	for _, a := range r.attempts {
		if a.OlympiadID == olympiadID && a.Status == model.AttemptCompleted {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].TimeTakenSeconds != out[j].TimeTakenSeconds {
			return out[i].TimeTakenSeconds < out[j].TimeTakenSeconds
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memAttemptRepo) FindByOlympiad(olympiadID uint) ([]model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Attempt
	for _, a := range r.attempts {
		if a.OlympiadID == olympiadID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// seed stores an attempt directly, bypassing the uniqueness check timing.
func (r *memAttemptRepo) seed(attempt model.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if attempt.ID == 0 {
		attempt.ID = r.nextID
	}
	if attempt.ID >= r.nextID {
		r.nextID = attempt.ID + 1
	}
	r.attempts[attempt.ID] = &attempt
}

type memAwardRepo struct {
	mu     sync.Mutex
	awards map[uint]*model.AwardRecord
	nextID uint
}

func newMemAwardRepo() *memAwardRepo {
	return &memAwardRepo{awards: map[uint]*model.AwardRecord{}, nextID: 1}
}

func (r *memAwardRepo) Create(award *model.AwardRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.awards {
		if a.OlympiadID == award.OlympiadID && a.UserID == award.UserID {
			return fmt.Errorf("duplicate award for user %d olympiad %d", award.UserID, award.OlympiadID)
		}
	}
	award.ID = r.nextID
	r.nextID++
	copied := *award
	r.awards[award.ID] = &copied
	return nil
}

func (r *memAwardRepo) Exists(olympiadID, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.awards {
		if a.OlympiadID == olympiadID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAwardRepo) FindByID(id uint) (*model.AwardRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.awards[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAwardRepo) FindByOlympiad(olympiadID uint) ([]model.AwardRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AwardRecord
	for _, a := range r.awards {
		if a.OlympiadID == olympiadID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAwardRepo) Save(award *model.AwardRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *award
	r.awards[award.ID] = &copied
	return nil
}

func (r *memAwardRepo) TransitionStatus(id uint, from, to model.AwardStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.awards[id]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	return true, nil
}

type memPayments struct {
	paid map[regKey]bool
}

func newMemPayments() *memPayments {
	return &memPayments{paid: map[regKey]bool{}}
}

func (p *memPayments) HasCompletedPayment(userID, olympiadID uint) (bool, error) {
	return p.paid[regKey{userID, olympiadID}], nil
}

// memLedger mirrors the reference-based idempotency of the real ledger.
type memLedger struct {
	mu       sync.Mutex
	balances map[uint]decimal.Decimal
	xp       map[uint]int
	credits  map[string]string // reference -> tx ID
	xpRefs   map[string]bool
	failNext bool
	// failAfter, when positive, fails the grant that follows this many
	// successful new grants. Idempotent replays do not count.
	failAfter int
	grants    int
}

// shouldFail consumes the configured failure modes. Callers hold l.mu.
func (l *memLedger) shouldFail() bool {
	if l.failNext {
		l.failNext = false
		return true
	}
	if l.failAfter > 0 && l.grants >= l.failAfter {
		l.failAfter = 0
		return true
	}
	return false
}

func newMemLedger() *memLedger {
	return &memLedger{
		balances: map[uint]decimal.Decimal{},
		xp:       map[uint]int{},
		credits:  map[string]string{},
		xpRefs:   map[string]bool{},
	}
}

func (l *memLedger) Credit(userID uint, amount decimal.Decimal, reason, reference string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if txID, ok := l.credits[reference]; ok {
		return txID, nil
	}
	if l.shouldFail() {
		return "", fmt.Errorf("ledger unavailable")
	}
	txID := fmt.Sprintf("tx-%d", len(l.credits)+1)
	l.credits[reference] = txID
	l.balances[userID] = l.balances[userID].Add(amount)
	l.grants++
	return txID, nil
}

func (l *memLedger) AddExperience(userID uint, amount int, reason, reference string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.xpRefs[reference] {
		return nil
	}
	if l.shouldFail() {
		return fmt.Errorf("ledger unavailable")
	}
	l.xpRefs[reference] = true
	l.xp[userID] += amount
	l.grants++
	return nil
}

func (l *memLedger) balance(userID uint) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID]
}

type memNotifier struct {
	mu        sync.Mutex
	messages  map[uint][]string
	delivered bool
}

func newMemNotifier() *memNotifier {
	return &memNotifier{messages: map[uint][]string{}, delivered: true}
}

func (n *memNotifier) Send(userID uint, message string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages[userID] = append(n.messages[userID], message)
	return n.delivered
}
