package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/application/constant"
	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/input"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/infra/adapters/memory"
)

type RoomUsecase interface {
	CreateRoom(ctx context.Context, in *input.CreateRoomInput) (*models.Room, error)
	GetActiveRoom(ctx context.Context, roomID string) (*models.Room, error)
	CloseRoom(ctx context.Context, roomID string, byUserID uuid.UUID) error
	ListOpenRooms(ctx context.Context) []*models.Room
}

type roomUsecase struct {
	registry    memory.RoomRegistry
	broadcaster BroadcastUsecase

	maxRoomMinutes int
}

func NewRoomUsecase(registry memory.RoomRegistry, broadcaster BroadcastUsecase, maxRoomMinutes int) RoomUsecase {
	return &roomUsecase{
		registry:       registry,
		broadcaster:    broadcaster,
		maxRoomMinutes: maxRoomMinutes,
	}
}

func (uc *roomUsecase) CreateRoom(_ context.Context, in *input.CreateRoomInput) (*models.Room, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.ErrInvalidInput
	}

	if in.DurationMinutes <= 0 || in.DurationMinutes > uc.maxRoomMinutes {
		return nil, apperror.ErrInvalidInput
	}

	room := models.NewRoom(in.Title, in.Description, in.OwnerID, in.DurationMinutes, time.Now())

	if err := uc.registry.Create(room); err != nil {
		return nil, err
	}

	slog.Info(
		"room created",
		slog.String(constant.RoomID, room.ID),
		slog.Any(constant.UserID, room.OwnerID),
		slog.Time("expires_at", room.ExpiresAt),
	)

	return room, nil
}

func (uc *roomUsecase) GetActiveRoom(_ context.Context, roomID string) (*models.Room, error) {
	return uc.registry.GetActive(roomID)
}

// CloseRoom is idempotent: closing an already-closed or expired room
// succeeds without doing anything. Only the owning admin may close.
func (uc *roomUsecase) CloseRoom(_ context.Context, roomID string, byUserID uuid.UUID) error {
	room, err := uc.registry.Get(roomID)
	if err != nil {
		return err
	}

	if room.OwnerID != byUserID {
		return apperror.ErrUnauthorized
	}

	if _, err = uc.registry.Close(roomID); err != nil {
		return err
	}

	uc.broadcaster.EvictAll(roomID, ReasonRoomClosed)

	slog.Info(
		"room closed",
		slog.String(constant.RoomID, roomID),
		slog.Any(constant.UserID, byUserID),
	)

	return nil
}

func (uc *roomUsecase) ListOpenRooms(_ context.Context) []*models.Room {
	return uc.registry.ListOpen()
}
