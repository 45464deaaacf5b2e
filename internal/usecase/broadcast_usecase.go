package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/application/metric"
	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/infra/adapters/memory"
)

// Close reasons surfaced on a subscription when the broadcaster shuts
// it down.
const (
	ReasonRoomClosed   = "room_closed"
	ReasonReplaced     = "replaced"
	ReasonSlowConsumer = "slow_consumer"
	ReasonLeft         = "left"
)

// memberBuffer is how many undelivered messages a member may lag
// behind before it is evicted instead of stalling the room.
const memberBuffer = 256

// Subscription is one member's live channel into a room. Messages
// arrive on Messages in sequence order; Done is closed when the
// broadcaster evicts the member or the room terminates.
type Subscription struct {
	RoomID string
	UserID uuid.UUID
	Handle string

	messages chan models.Message
	done     chan struct{}
	reason   string
	once     sync.Once
}

func (s *Subscription) Messages() <-chan models.Message { return s.messages }

func (s *Subscription) Done() <-chan struct{} { return s.done }

// Reason reports why the subscription ended. Only valid after Done is
// closed.
func (s *Subscription) Reason() string { return s.reason }

func (s *Subscription) close(reason string) {
	s.once.Do(func() {
		s.reason = reason
		close(s.done)
	})
}

// BroadcastUsecase owns room membership and message fan-out. Sequence
// assignment is the single serialization point per room; different
// rooms run fully in parallel.
type BroadcastUsecase interface {
	Join(ctx context.Context, roomID string, userID uuid.UUID, handle string) (*Subscription, error)
	Send(ctx context.Context, roomID string, userID uuid.UUID, content string) (*models.Message, error)
	Leave(ctx context.Context, sub *Subscription)
	EvictAll(roomID, reason string)
}

type roomState struct {
	mu      sync.Mutex
	seq     uint64
	members map[uuid.UUID]*Subscription
}

type broadcastUsecase struct {
	registry memory.RoomRegistry

	// rooms holds map[room_id]*roomState. State persists for the
	// room's whole lifetime so sequence numbers never reset, and is
	// dropped only on room termination.
	rooms map[string]*roomState
	mu    sync.RWMutex
}

func NewBroadcastUsecase(registry memory.RoomRegistry) BroadcastUsecase {
	return &broadcastUsecase{
		registry: registry,
		rooms:    make(map[string]*roomState, 16),
	}
}

func (b *broadcastUsecase) Join(_ context.Context, roomID string, userID uuid.UUID, handle string) (*Subscription, error) {
	if _, err := b.registry.GetActive(roomID); err != nil {
		return nil, err
	}

	state := b.stateFor(roomID)

	sub := &Subscription{
		RoomID:   roomID,
		UserID:   userID,
		Handle:   handle,
		messages: make(chan models.Message, memberBuffer),
		done:     make(chan struct{}),
	}

	state.mu.Lock()
	// A reconnect replaces the previous membership; one live channel
	// per (room, user).
	if prev, ok := state.members[userID]; ok {
		prev.close(ReasonReplaced)
	}
	state.members[userID] = sub
	state.mu.Unlock()

	// The room may have terminated between the first check and the
	// insert, with EvictAll sweeping past before we were in the map.
	// Re-validate so the member is never parked in a dead room waiting
	// for a Done that nobody will deliver.
	if _, err := b.registry.GetActive(roomID); err != nil {
		b.evictOne(roomID, userID, sub, ReasonRoomClosed)
		sub.close(ReasonRoomClosed)
		return nil, err
	}

	return sub, nil
}

// Send re-validates the room per message, not just at join, since
// rooms expire mid-session. On an unavailable room the caller's own
// membership is eagerly dropped.
func (b *broadcastUsecase) Send(ctx context.Context, roomID string, userID uuid.UUID, content string) (*models.Message, error) {
	if _, err := b.registry.GetActive(roomID); err != nil {
		b.evictOne(roomID, userID, nil, ReasonRoomClosed)
		return nil, err
	}

	b.mu.RLock()
	state := b.rooms[roomID]
	b.mu.RUnlock()

	if state == nil {
		return nil, apperror.ErrRoomUnavailable
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	sender, joined := state.members[userID]
	if !joined {
		// Unjoined callers never consume a sequence number.
		return nil, apperror.ErrRoomUnavailable
	}

	state.seq++
	msg := models.Message{
		RoomID:       roomID,
		SenderID:     userID,
		SenderHandle: sender.Handle,
		Content:      content,
		SentAt:       time.Now(),
		Sequence:     state.seq,
	}

	// Fire-and-forget per member: a full buffer means the member is
	// evicted rather than the whole room waiting on it.
	for id, member := range state.members {
		select {
		case member.messages <- msg:
		default:
			member.close(ReasonSlowConsumer)
			delete(state.members, id)
		}
	}

	metric.IncrementRoomMessages()

	return &msg, nil
}

// Leave removes exactly the given subscription; leaving twice is a
// no-op. A stale connection tearing down after its user reconnected
// must not take the replacement membership with it, so removal is
// keyed on the subscription, not the user.
func (b *broadcastUsecase) Leave(_ context.Context, sub *Subscription) {
	if sub == nil {
		return
	}

	b.evictOne(sub.RoomID, sub.UserID, sub, ReasonLeft)
}

// EvictAll closes every membership of a terminated room and drops its
// state.
func (b *broadcastUsecase) EvictAll(roomID, reason string) {
	b.mu.Lock()
	state := b.rooms[roomID]
	delete(b.rooms, roomID)
	b.mu.Unlock()

	if state == nil {
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	for id, member := range state.members {
		member.close(reason)
		delete(state.members, id)
	}
}

// evictOne removes the user's membership. With expected set, the
// removal only happens while that exact subscription is still the
// current one.
func (b *broadcastUsecase) evictOne(roomID string, userID uuid.UUID, expected *Subscription, reason string) {
	b.mu.RLock()
	state := b.rooms[roomID]
	b.mu.RUnlock()

	if state == nil {
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	member, ok := state.members[userID]
	if !ok {
		return
	}
	if expected != nil && member != expected {
		return
	}

	member.close(reason)
	delete(state.members, userID)
}

func (b *broadcastUsecase) stateFor(roomID string) *roomState {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.rooms[roomID]
	if !ok {
		state = &roomState{members: make(map[uuid.UUID]*Subscription, 8)}
		b.rooms[roomID] = state
	}

	return state
}
