package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/input"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres/repository"
)

type EventUsecase interface {
	CreateEvent(ctx context.Context, in *input.CreateEventInput) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
}

type eventUsecase struct {
	eventRepo repository.EventRepository
}

func NewEventUsecase(eventRepo repository.EventRepository) EventUsecase {
	return &eventUsecase{eventRepo: eventRepo}
}

func (uc *eventUsecase) CreateEvent(ctx context.Context, in *input.CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.ErrInvalidInput
	}

	eventDate, err := time.Parse(time.RFC3339, in.EventDate)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	event := &models.Event{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Location:    in.Location,
		Capacity:    in.Capacity,
		OrganizerID: in.OrganizerID,
		EventDate:   eventDate,
		CreatedAt:   time.Now(),
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (uc *eventUsecase) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return uc.eventRepo.List(ctx)
}
