package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
}

type eventRepo struct {
	db *sqlx.DB
}

func NewEventRepo(db *sqlx.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *models.Event) error {
	query := `INSERT INTO events (id, title, description, category, image_url, location, capacity, organizer_id, event_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.ImageURL,
		event.Location,
		event.Capacity,
		event.OrganizerID,
		event.EventDate,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event

	query := "SELECT id, title, description, category, image_url, location, capacity, organizer_id, event_date, created_at FROM events WHERE id = $1"

	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}

		return nil, err
	}

	return &event, nil
}

func (r *eventRepo) List(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event

	query := "SELECT id, title, description, category, image_url, location, capacity, organizer_id, event_date, created_at FROM events ORDER BY event_date ASC"

	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}
