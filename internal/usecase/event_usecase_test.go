package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/input"
	"github.com/jssrooms/backend/internal/infra/adapters/memory"
)

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	events := NewEventUsecase(memory.NewEventRepository())
	ctx := context.Background()
	organizerID := uuid.New()

	when := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	event, err := events.CreateEvent(ctx, &input.CreateEventInput{
		Title:       "tech fest",
		Location:    "main auditorium",
		Capacity:    300,
		OrganizerID: organizerID,
		EventDate:   when.Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if !event.EventDate.Equal(when) {
		t.Fatalf("event date %v, want %v", event.EventDate, when)
	}
	if event.OrganizerID != organizerID {
		t.Fatalf("organizer %v, want %v", event.OrganizerID, organizerID)
	}
}

func TestCreateEventValidation(t *testing.T) {
	t.Parallel()

	events := NewEventUsecase(memory.NewEventRepository())
	ctx := context.Background()

	cases := []struct {
		name string
		in   input.CreateEventInput
	}{
		{"blank title", input.CreateEventInput{Title: " ", EventDate: time.Now().Format(time.RFC3339)}},
		{"bad date", input.CreateEventInput{Title: "x", EventDate: "next tuesday"}},
		{"empty date", input.CreateEventInput{Title: "x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := events.CreateEvent(ctx, &tc.in); !errors.Is(err, apperror.ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestListEventsSortedByDate(t *testing.T) {
	t.Parallel()

	events := NewEventUsecase(memory.NewEventRepository())
	ctx := context.Background()

	later := time.Now().Add(72 * time.Hour)
	sooner := time.Now().Add(24 * time.Hour)

	for _, when := range []time.Time{later, sooner} {
		if _, err := events.CreateEvent(ctx, &input.CreateEventInput{
			Title:       "event",
			OrganizerID: uuid.New(),
			EventDate:   when.Format(time.RFC3339),
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	listed, err := events.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d events, want 2", len(listed))
	}
	if !listed[0].EventDate.Before(listed[1].EventDate) {
		t.Fatal("events not sorted soonest first")
	}
}
