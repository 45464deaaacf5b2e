package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/application/constant"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/domain/output"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres/repository"
)

// RegistrationUsecase is the registration state machine. A record only
// ever moves registered -> checked_in, and the single token is minted
// here, once, together with the record.
type RegistrationUsecase interface {
	Register(ctx context.Context, userID, eventID uuid.UUID) (*output.RegistrationTicket, error)
	GetRegistration(ctx context.Context, userID, eventID uuid.UUID) (*models.EventRegistration, error)
	ListTickets(ctx context.Context, userID uuid.UUID) ([]output.RegistrationTicket, error)
}

type registrationUsecase struct {
	registrationRepo repository.RegistrationRepository
}

func NewRegistrationUsecase(registrationRepo repository.RegistrationRepository) RegistrationUsecase {
	return &registrationUsecase{registrationRepo: registrationRepo}
}

func (uc *registrationUsecase) Register(ctx context.Context, userID, eventID uuid.UUID) (*output.RegistrationTicket, error) {
	reg := models.NewEventRegistration(userID, eventID)
	token := models.NewAccessToken(reg.ID)

	if err := uc.registrationRepo.Create(ctx, reg, token); err != nil {
		return nil, err
	}

	slog.Info(
		"registration created",
		slog.Any(constant.UserID, userID),
		slog.Any(constant.EventID, eventID),
	)

	return &output.RegistrationTicket{
		Registration: *reg,
		TokenValue:   token.Value,
	}, nil
}

func (uc *registrationUsecase) GetRegistration(ctx context.Context, userID, eventID uuid.UUID) (*models.EventRegistration, error) {
	return uc.registrationRepo.GetByUserAndEvent(ctx, userID, eventID)
}

func (uc *registrationUsecase) ListTickets(ctx context.Context, userID uuid.UUID) ([]output.RegistrationTicket, error) {
	tickets, err := uc.registrationRepo.ListTicketsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return tickets, nil
}
