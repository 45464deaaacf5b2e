package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/infra/adapters/memory"
)

func TestSweepExpiresDueRooms(t *testing.T) {
	t.Parallel()

	registry := memory.NewRoomRegistry()
	broadcaster := NewBroadcastUsecase(registry)
	sweeper := NewExpirySweeper(registry, broadcaster, time.Minute)
	ctx := context.Background()

	due := models.NewRoom("due", "", uuid.New(), 30, time.Now())
	fresh := models.NewRoom("fresh", "", uuid.New(), 30, time.Now())
	for _, room := range []*models.Room{due, fresh} {
		if err := registry.Create(room); err != nil {
			t.Fatalf("create room: %v", err)
		}
	}

	dueSub, err := broadcaster.Join(ctx, due.ID, uuid.New(), "member")
	if err != nil {
		t.Fatalf("join due room: %v", err)
	}
	freshSub, err := broadcaster.Join(ctx, fresh.ID, uuid.New(), "member")
	if err != nil {
		t.Fatalf("join fresh room: %v", err)
	}

	now := time.Now()
	due.ExpiresAt = now.Add(-time.Second)

	sweeper.Sweep(now)

	waitDone(t, dueSub)
	if dueSub.Reason() != ReasonRoomClosed {
		t.Fatalf("reason %q, want %q", dueSub.Reason(), ReasonRoomClosed)
	}
	if due.Status != models.RoomExpired {
		t.Fatalf("due room status %q, want expired", due.Status)
	}

	select {
	case <-freshSub.Done():
		t.Fatal("fresh room member was evicted")
	default:
	}

	// Sweeping again finds nothing to do.
	sweeper.Sweep(now)

	if _, err := broadcaster.Send(ctx, fresh.ID, freshSub.UserID, "still open"); err != nil {
		t.Fatalf("send in fresh room after sweep: %v", err)
	}
}
