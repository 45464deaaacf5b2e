package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
)

func TestCheckInRedeemsToken(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, 10)
	userID := uuid.New()
	scannerID := uuid.New()

	ticket, err := f.registrations.Register(ctx, userID, event.ID)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := f.checkins.CheckIn(ctx, ticket.TokenValue, scannerID)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if result.UserID != userID || result.EventID != event.ID {
		t.Fatalf("result bound to wrong user/event: %+v", result)
	}

	reg, err := f.registrations.GetRegistration(ctx, userID, event.ID)
	if err != nil {
		t.Fatalf("GetRegistration: %v", err)
	}
	if reg.Status != models.RegistrationCheckedIn {
		t.Fatalf("status %q, want checked_in", reg.Status)
	}
	if reg.CheckedInAt == nil {
		t.Fatal("checked_in_at not set")
	}
}

func TestCheckInSecondScanFails(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, 10)

	ticket, err := f.registrations.Register(ctx, uuid.New(), event.ID)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := f.checkins.CheckIn(ctx, ticket.TokenValue, uuid.New()); err != nil {
		t.Fatalf("first scan: %v", err)
	}

	_, err = f.checkins.CheckIn(ctx, ticket.TokenValue, uuid.New())
	if !errors.Is(err, apperror.ErrAlreadyRedeemed) {
		t.Fatalf("second scan: got %v, want ErrAlreadyRedeemed", err)
	}
}

func TestCheckInUnknownToken(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)

	_, err := f.checkins.CheckIn(context.Background(), "no-such-token", uuid.New())
	if !errors.Is(err, apperror.ErrInvalidToken) {
		t.Fatalf("unknown token: got %v, want ErrInvalidToken", err)
	}
}

func TestCheckInEmptyToken(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)

	_, err := f.checkins.CheckIn(context.Background(), "", uuid.New())
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("empty token: got %v, want ErrInvalidInput", err)
	}
}

func TestCheckInConcurrentScans(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, 10)

	ticket, err := f.registrations.Register(ctx, uuid.New(), event.ID)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	const scanners = 16

	var wg sync.WaitGroup
	results := make(chan error, scanners)

	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.checkins.CheckIn(ctx, ticket.TokenValue, uuid.New())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, dup int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperror.ErrAlreadyRedeemed):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if ok != 1 || dup != scanners-1 {
		t.Fatalf("got %d successes and %d duplicates, want exactly 1 and %d", ok, dup, scanners-1)
	}
}

func TestCheckedInUserStaysRegistered(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, 10)
	userID := uuid.New()

	ticket, err := f.registrations.Register(ctx, userID, event.ID)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.checkins.CheckIn(ctx, ticket.TokenValue, uuid.New()); err != nil {
		t.Fatalf("check in: %v", err)
	}

	// The consumed registration still occupies its seat.
	_, err = f.registrations.Register(ctx, userID, event.ID)
	if !errors.Is(err, apperror.ErrAlreadyRegistered) {
		t.Fatalf("re-register after check-in: got %v, want ErrAlreadyRegistered", err)
	}
}
