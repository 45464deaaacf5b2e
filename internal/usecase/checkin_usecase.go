package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/application/constant"
	"github.com/jssrooms/backend/internal/application/metric"
	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/output"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres/repository"
)

// CheckinUsecase is the scanner-facing gateway. A token is honored at
// most once; a second scan is a reportable error, never a silent
// success, because duplicate entry is something the operator must see.
type CheckinUsecase interface {
	CheckIn(ctx context.Context, tokenValue string, scannerID uuid.UUID) (*output.CheckinResult, error)
}

type checkinUsecase struct {
	registrationRepo repository.RegistrationRepository
}

func NewCheckinUsecase(registrationRepo repository.RegistrationRepository) CheckinUsecase {
	return &checkinUsecase{registrationRepo: registrationRepo}
}

func (uc *checkinUsecase) CheckIn(ctx context.Context, tokenValue string, scannerID uuid.UUID) (*output.CheckinResult, error) {
	if tokenValue == "" {
		return nil, apperror.ErrInvalidInput
	}

	now := time.Now()

	reg, err := uc.registrationRepo.Redeem(ctx, tokenValue, now)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrAlreadyRedeemed):
			metric.RecordCheckin("already_redeemed")
			slog.Warn(
				"duplicate scan of a consumed token",
				slog.Any("scanner_id", scannerID),
			)
		case errors.Is(err, apperror.ErrInvalidToken):
			metric.RecordCheckin("invalid_token")
		}

		return nil, err
	}

	metric.RecordCheckin("ok")

	slog.Info(
		"check-in",
		slog.Any(constant.UserID, reg.UserID),
		slog.Any(constant.EventID, reg.EventID),
		slog.Any("scanner_id", scannerID),
	)

	return &output.CheckinResult{
		UserID:      reg.UserID,
		EventID:     reg.EventID,
		CheckedInAt: now,
	}, nil
}
