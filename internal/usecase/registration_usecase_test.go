package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/infra/adapters/memory"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres/repository"
)

type registrationFixture struct {
	events        repository.EventRepository
	registrations RegistrationUsecase
	checkins      CheckinUsecase
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()

	events := memory.NewEventRepository()
	repo := memory.NewRegistrationRepository(events)

	return &registrationFixture{
		events:        events,
		registrations: NewRegistrationUsecase(repo),
		checkins:      NewCheckinUsecase(repo),
	}
}

func (f *registrationFixture) createEvent(t *testing.T, capacity int) *models.Event {
	t.Helper()

	event := &models.Event{
		ID:          uuid.New(),
		Title:       "hackathon",
		Capacity:    capacity,
		OrganizerID: uuid.New(),
		EventDate:   time.Now().Add(24 * time.Hour),
		CreatedAt:   time.Now(),
	}
	if err := f.events.Create(context.Background(), event); err != nil {
		t.Fatalf("create event: %v", err)
	}

	return event
}

func TestRegisterIssuesTicket(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	event := f.createEvent(t, 100)
	userID := uuid.New()

	ticket, err := f.registrations.Register(context.Background(), userID, event.ID)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if ticket.Registration.Status != models.RegistrationRegistered {
		t.Fatalf("status %q, want registered", ticket.Registration.Status)
	}
	if ticket.Registration.UserID != userID || ticket.Registration.EventID != event.ID {
		t.Fatalf("ticket bound to wrong user/event: %+v", ticket.Registration)
	}
	if ticket.TokenValue == "" {
		t.Fatal("ticket has no token value")
	}
}

func TestRegisterUnknownEvent(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)

	_, err := f.registrations.Register(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("register for unknown event: got %v, want ErrNotFound", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	event := f.createEvent(t, 100)
	userID := uuid.New()

	if _, err := f.registrations.Register(context.Background(), userID, event.ID); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := f.registrations.Register(context.Background(), userID, event.ID)
	if !errors.Is(err, apperror.ErrAlreadyRegistered) {
		t.Fatalf("second register: got %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegisterCapacity(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	event := f.createEvent(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.registrations.Register(ctx, uuid.New(), event.ID); err != nil {
			t.Fatalf("register %d: %v", i+1, err)
		}
	}

	_, err := f.registrations.Register(ctx, uuid.New(), event.ID)
	if !errors.Is(err, apperror.ErrCapacityExceeded) {
		t.Fatalf("register over capacity: got %v, want ErrCapacityExceeded", err)
	}
}

func TestRegisterUnlimitedCapacity(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	event := f.createEvent(t, 0)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		if _, err := f.registrations.Register(ctx, uuid.New(), event.ID); err != nil {
			t.Fatalf("register %d: %v", i+1, err)
		}
	}
}

func TestRegisterConcurrentLastSeat(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	event := f.createEvent(t, 1)
	ctx := context.Background()

	const contenders = 16

	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.registrations.Register(ctx, uuid.New(), event.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, full int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, apperror.ErrCapacityExceeded):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 || full != contenders-1 {
		t.Fatalf("got %d winners and %d rejections, want exactly 1 and %d", wins, full, contenders-1)
	}
}

func TestListTickets(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	first := f.createEvent(t, 10)
	second := f.createEvent(t, 10)

	for _, event := range []*models.Event{first, second} {
		if _, err := f.registrations.Register(ctx, userID, event.ID); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	// Someone else's ticket must not show up.
	if _, err := f.registrations.Register(ctx, uuid.New(), first.ID); err != nil {
		t.Fatalf("register other user: %v", err)
	}

	tickets, err := f.registrations.ListTickets(ctx, userID)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets, want 2", len(tickets))
	}
	for _, ticket := range tickets {
		if ticket.Registration.UserID != userID {
			t.Fatalf("ticket for wrong user: %+v", ticket.Registration)
		}
		if ticket.TokenValue == "" {
			t.Fatal("ticket missing token value")
		}
	}
}

func TestGetRegistration(t *testing.T) {
	t.Parallel()

	f := newRegistrationFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, 10)
	userID := uuid.New()

	if _, err := f.registrations.GetRegistration(ctx, userID, event.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("get before register: got %v, want ErrNotFound", err)
	}

	if _, err := f.registrations.Register(ctx, userID, event.ID); err != nil {
		t.Fatalf("register: %v", err)
	}

	reg, err := f.registrations.GetRegistration(ctx, userID, event.ID)
	if err != nil {
		t.Fatalf("GetRegistration: %v", err)
	}
	if reg.Status != models.RegistrationRegistered {
		t.Fatalf("status %q, want registered", reg.Status)
	}
}
