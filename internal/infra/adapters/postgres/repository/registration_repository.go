package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/domain/output"
)

// RegistrationRepository owns both registrations and their access
// tokens: the two change together (mint at registration, consume at
// check-in) and the store is where that atomicity lives.
type RegistrationRepository interface {
	// Create inserts the registration and its freshly minted token.
	// The duplicate check, the capacity check and the insert are
	// atomic per event. Fails with ErrNotFound (no such event),
	// ErrAlreadyRegistered or ErrCapacityExceeded.
	Create(ctx context.Context, reg *models.EventRegistration, token *models.AccessToken) error

	GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*models.EventRegistration, error)
	ListTicketsByUser(ctx context.Context, userID uuid.UUID) ([]output.RegistrationTicket, error)

	// Redeem consumes the token and moves its registration to
	// checked-in, atomically. Exactly one concurrent caller ever
	// succeeds; the rest get ErrAlreadyRedeemed. Unknown token values
	// get ErrInvalidToken.
	Redeem(ctx context.Context, tokenValue string, now time.Time) (*models.EventRegistration, error)
}

type registrationRepo struct {
	db *sqlx.DB
}

func NewRegistrationRepo(db *sqlx.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *models.EventRegistration, token *models.AccessToken) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the event row: all registrations for one event serialize
	// here, which makes the duplicate and capacity checks race-free.
	var capacity int
	err = tx.GetContext(ctx, &capacity, "SELECT capacity FROM events WHERE id = $1 FOR UPDATE", reg.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock event: %w", err)
	}

	var exists bool
	err = tx.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2)",
		reg.UserID, reg.EventID,
	)
	if err != nil {
		return fmt.Errorf("check existing registration: %w", err)
	}
	if exists {
		return apperror.ErrAlreadyRegistered
	}

	if capacity > 0 {
		var count int
		err = tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM registrations WHERE event_id = $1", reg.EventID)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if count >= capacity {
			return apperror.ErrCapacityExceeded
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO registrations (id, event_id, user_id, status, created_at) VALUES ($1, $2, $3, $4, $5)",
		reg.ID, reg.EventID, reg.UserID, reg.Status, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO access_tokens (id, registration_id, value, issued_at) VALUES ($1, $2, $3, $4)",
		token.ID, token.RegistrationID, token.Value, token.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("insert access token: %w", err)
	}

	return tx.Commit()
}

func (r *registrationRepo) GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*models.EventRegistration, error) {
	var reg models.EventRegistration

	query := "SELECT id, event_id, user_id, status, checked_in_at, created_at FROM registrations WHERE user_id = $1 AND event_id = $2"

	if err := r.db.GetContext(ctx, &reg, query, userID, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}

		return nil, err
	}

	return &reg, nil
}

func (r *registrationRepo) ListTicketsByUser(ctx context.Context, userID uuid.UUID) ([]output.RegistrationTicket, error) {
	type row struct {
		models.EventRegistration
		TokenValue string `db:"token_value"`
	}

	query := `SELECT r.id, r.event_id, r.user_id, r.status, r.checked_in_at, r.created_at, t.value AS token_value
		FROM registrations r
		JOIN access_tokens t ON t.registration_id = r.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC`

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	tickets := make([]output.RegistrationTicket, 0, len(rows))
	for _, rw := range rows {
		tickets = append(tickets, output.RegistrationTicket{
			Registration: rw.EventRegistration,
			TokenValue:   rw.TokenValue,
		})
	}

	return tickets, nil
}

func (r *registrationRepo) Redeem(ctx context.Context, tokenValue string, now time.Time) (*models.EventRegistration, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Single-statement check-and-set: only one transaction can win
	// the row where consumed_at is still NULL.
	var registrationID uuid.UUID
	err = tx.GetContext(ctx, &registrationID,
		"UPDATE access_tokens SET consumed_at = $1 WHERE value = $2 AND consumed_at IS NULL RETURNING registration_id",
		now, tokenValue,
	)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err = r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM access_tokens WHERE value = $1)", tokenValue); err != nil {
			return nil, fmt.Errorf("inspect token: %w", err)
		}
		if exists {
			return nil, apperror.ErrAlreadyRedeemed
		}

		return nil, apperror.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("consume token: %w", err)
	}

	var reg models.EventRegistration
	err = tx.GetContext(ctx, &reg,
		"UPDATE registrations SET status = $1, checked_in_at = $2 WHERE id = $3 RETURNING id, event_id, user_id, status, checked_in_at, created_at",
		models.RegistrationCheckedIn, now, registrationID,
	)
	if err != nil {
		return nil, fmt.Errorf("check in registration: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &reg, nil
}
