package service

import (
	"errors"
	"testing"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/shopspring/decimal"
)

type registrationFixture struct {
	olympiads *memOlympiadRepo
	regs      *memRegistrationRepo
	payments  *memPayments
	notifier  *memNotifier
	svc       RegistrationService
}

func newRegistrationFixture() *registrationFixture {
	f := &registrationFixture{
		olympiads: newMemOlympiadRepo(),
		regs:      newMemRegistrationRepo(),
		payments:  newMemPayments(),
		notifier:  newMemNotifier(),
	}
	f.svc = NewRegistrationService(f.olympiads, f.regs, f.payments, f.notifier)
	return f
}

func TestRegisterFreeOlympiad(t *testing.T) {
	f := newRegistrationFixture()
	o := &model.Olympiad{Title: "Free Cup"}
	if err := f.olympiads.Create(o); err != nil {
		t.Fatal(err)
	}

	reg, err := f.svc.Register(7, o.ID)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !reg.IsPaid {
		t.Error("free olympiad registration should be marked paid")
	}
	if len(f.notifier.messages[7]) != 1 {
		t.Errorf("got %d notifications, want 1", len(f.notifier.messages[7]))
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	f := newRegistrationFixture()
	o := &model.Olympiad{Title: "Free Cup"}
	if err := f.olympiads.Create(o); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Register(7, o.ID); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := f.svc.Register(7, o.ID)
	if !errors.Is(err, apperr.ErrAlreadyRegistered) {
		t.Fatalf("err = %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegisterCapacityLimit(t *testing.T) {
	f := newRegistrationFixture()
	limit := 2
	o := &model.Olympiad{Title: "Small Cup", MaxParticipants: &limit}
	if err := f.olympiads.Create(o); err != nil {
		t.Fatal(err)
	}

	for userID := uint(1); userID <= 2; userID++ {
		if _, err := f.svc.Register(userID, o.ID); err != nil {
			t.Fatalf("Register user %d: %v", userID, err)
		}
	}
	_, err := f.svc.Register(3, o.ID)
	if !errors.Is(err, apperr.ErrFull) {
		t.Fatalf("err = %v, want ErrFull", err)
	}
}

func TestRegisterPaidOlympiad(t *testing.T) {
	f := newRegistrationFixture()
	o := &model.Olympiad{Title: "Paid Cup", Price: decimal.NewFromInt(50000)}
	if err := f.olympiads.Create(o); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Register(7, o.ID)
	if !errors.Is(err, apperr.ErrPaymentRequired) {
		t.Fatalf("unpaid user: err = %v, want ErrPaymentRequired", err)
	}

	f.payments.paid[regKey{7, o.ID}] = true
	reg, err := f.svc.Register(7, o.ID)
	if err != nil {
		t.Fatalf("Register after payment: %v", err)
	}
	if reg.IsPaid {
		t.Error("paid olympiad registration is settled through the payment record, not IsPaid")
	}
}

func TestRegisterUnknownOlympiad(t *testing.T) {
	f := newRegistrationFixture()
	_, err := f.svc.Register(7, 999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
