package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/jssrooms/backend/internal/application/constant"
	"github.com/jssrooms/backend/internal/infra/adapters/memory"
)

// ExpirySweeper periodically expires rooms past their deadline and
// evicts their members. It is an optimization, not a correctness
// dependency: join/send re-validate against the registry anyway, so a
// stalled sweeper only delays the eviction of idle members.
type ExpirySweeper struct {
	registry    memory.RoomRegistry
	broadcaster BroadcastUsecase
	interval    time.Duration
}

func NewExpirySweeper(registry memory.RoomRegistry, broadcaster BroadcastUsecase, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		registry:    registry,
		broadcaster: broadcaster,
		interval:    interval,
	}
}

// Run blocks until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// Sweep runs one pass: every active room with expires_at <= now goes
// to expired and its members get the terminal room-closed notice.
func (s *ExpirySweeper) Sweep(now time.Time) {
	for _, room := range s.registry.ExpireDue(now) {
		s.broadcaster.EvictAll(room.ID, ReasonRoomClosed)

		slog.Info(
			"room expired",
			slog.String(constant.RoomID, room.ID),
			slog.Time("expired_at", room.ExpiresAt),
		)
	}
}
