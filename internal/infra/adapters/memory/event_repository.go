package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres/repository"
)

var _ repository.EventRepository = (*eventRepository)(nil)

type eventRepository struct {
	events map[uuid.UUID]*models.Event

	mu sync.RWMutex
}

func NewEventRepository() repository.EventRepository {
	return &eventRepository{
		events: make(map[uuid.UUID]*models.Event),
	}
}

func (r *eventRepository) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := *event
	r.events[e.ID] = &e

	return nil
}

func (r *eventRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	e := *event
	return &e, nil
}

func (r *eventRepository) List(_ context.Context) ([]*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*models.Event, 0, len(r.events))
	for _, event := range r.events {
		e := *event
		events = append(events, &e)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})

	return events, nil
}
