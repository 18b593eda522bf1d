package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/events"
)

type checkInFixture struct {
	svc    CheckInService
	regSvc RegistrationService
	pub    *recordingPublisher
	event  *domain.Event
	reg    *domain.Registration
}

func newCheckInFixture(t *testing.T, approve bool) *checkInFixture {
	t.Helper()
	eventRepo := newMockEventRepo()
	regRepo := newMockRegistrationRepo(eventRepo)
	teamRepo := newMockTeamRepo(regRepo)
	pub := newRecordingPublisher()
	regSvc := NewRegistrationService(regRepo, teamRepo, pub)
	svc := NewCheckInService(regRepo, pub)

	event := seedMockEvent(t, eventRepo, 10, false, false, 1)
	reg, _, err := regSvc.Register(context.Background(), event.ID, "user-1", soloRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if approve {
		if _, err := regSvc.UpdateStatus(context.Background(), reg.ID, domain.RegistrationStatusApproved); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
	}

	return &checkInFixture{svc: svc, regSvc: regSvc, pub: pub, event: event, reg: reg}
}

func TestCheckIn_HappyPath(t *testing.T) {
	f := newCheckInFixture(t, true)

	checked, err := f.svc.CheckIn(context.Background(), f.event.ID, f.reg.ID, "admin-1")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if !checked.CheckedIn {
		t.Error("Expected checked_in to be set")
	}
	if checked.CheckedInBy != "admin-1" {
		t.Errorf("CheckedInBy = %s", checked.CheckedInBy)
	}
	if checked.CheckedInAt == nil {
		t.Error("Expected checked_in_at to be set")
	}
	if f.pub.published(events.TopicRegistrationCheckedIn) != 1 {
		t.Error("Expected registration.checked-in to be published once")
	}
}

func TestCheckIn_NotApproved(t *testing.T) {
	f := newCheckInFixture(t, false)

	_, err := f.svc.CheckIn(context.Background(), f.event.ID, f.reg.ID, "admin-1")
	if !errors.Is(err, domain.ErrNotApproved) {
		t.Fatalf("Expected ErrNotApproved, got %v", err)
	}
}

func TestCheckIn_EventMismatch(t *testing.T) {
	f := newCheckInFixture(t, true)

	_, err := f.svc.CheckIn(context.Background(), "other-event", f.reg.ID, "admin-1")
	if !errors.Is(err, domain.ErrEventMismatch) {
		t.Fatalf("Expected ErrEventMismatch, got %v", err)
	}
}

func TestCheckIn_UnknownRegistration(t *testing.T) {
	f := newCheckInFixture(t, true)

	_, err := f.svc.CheckIn(context.Background(), f.event.ID, "evt-1_nobody", "admin-1")
	if !errors.Is(err, domain.ErrRegistrationNotFound) {
		t.Fatalf("Expected ErrRegistrationNotFound, got %v", err)
	}
}

func TestCheckIn_SecondScanRejected(t *testing.T) {
	f := newCheckInFixture(t, true)
	ctx := context.Background()

	if _, err := f.svc.CheckIn(ctx, f.event.ID, f.reg.ID, "admin-1"); err != nil {
		t.Fatalf("First CheckIn: %v", err)
	}
	_, err := f.svc.CheckIn(ctx, f.event.ID, f.reg.ID, "admin-2")
	if !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		t.Fatalf("Expected ErrAlreadyCheckedIn, got %v", err)
	}
}

// Two scanners racing on the same badge admit exactly once.
func TestCheckIn_ConcurrentScans(t *testing.T) {
	f := newCheckInFixture(t, true)
	ctx := context.Background()

	const scanners = 6
	var wg sync.WaitGroup
	errs := make([]error, scanners)
	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CheckIn(ctx, f.event.ID, f.reg.ID, "admin-1")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrAlreadyCheckedIn):
		default:
			t.Errorf("Unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("Expected exactly one admit, got %d", succeeded)
	}
}
