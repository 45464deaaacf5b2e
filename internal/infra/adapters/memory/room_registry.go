package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jssrooms/backend/internal/application/metric"
	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
)

// RoomRegistry is the authoritative table of chat rooms. Rooms are
// memory-resident for their whole lifetime: they live for minutes and
// nothing about them survives process restart by design.
//
// Expiry is enforced lazily here on every lookup; the sweeper merely
// makes eviction prompt for idle rooms.
type RoomRegistry interface {
	Create(room *models.Room) error
	Get(id string) (*models.Room, error)
	GetActive(id string) (*models.Room, error)
	Close(id string) (*models.Room, error)
	ExpireDue(now time.Time) []*models.Room
	ListOpen() []*models.Room
}

type roomRegistry struct {
	// rooms holds map[room_id]*room; the registry owns the stored
	// pointers after Create.
	rooms map[string]*models.Room

	mu sync.RWMutex
}

func NewRoomRegistry() RoomRegistry {
	return &roomRegistry{
		rooms: make(map[string]*models.Room, 16),
	}
}

func (r *roomRegistry) Create(room *models.Room) error {
	if room.DurationMinutes <= 0 {
		return apperror.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Six-digit IDs collide eventually; re-roll instead of failing
	// the admin's request.
	for _, taken := r.rooms[room.ID]; taken; _, taken = r.rooms[room.ID] {
		room.ID = models.NewRoomID()
	}

	r.rooms[room.ID] = room

	metric.SetRoomsActive(r.activeCountLocked())

	return nil
}

// Get returns the room in whatever state it is in.
func (r *roomRegistry) Get(id string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, apperror.ErrRoomUnavailable
	}

	return room, nil
}

// GetActive returns the room only while it accepts traffic. Missing,
// expired and closed rooms all come back as ErrRoomUnavailable so
// callers cannot probe terminal state.
func (r *roomRegistry) GetActive(id string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, apperror.ErrRoomUnavailable
	}

	if room.Status == models.RoomActive && room.ExpiredBy(time.Now()) {
		room.Status = models.RoomExpired
		metric.SetRoomsActive(r.activeCountLocked())
	}

	if room.Status != models.RoomActive {
		return nil, apperror.ErrRoomUnavailable
	}

	return room, nil
}

// Close marks the room closed. Closing a room that is already closed
// or expired is a no-op success.
func (r *roomRegistry) Close(id string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, apperror.ErrRoomUnavailable
	}

	if room.Status == models.RoomActive {
		room.Status = models.RoomClosed
		metric.SetRoomsActive(r.activeCountLocked())
	}

	return room, nil
}

// ExpireDue flips every active room past its deadline to expired and
// returns them so the caller can evict their members.
func (r *roomRegistry) ExpireDue(now time.Time) []*models.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []*models.Room

	for _, room := range r.rooms {
		if room.Status == models.RoomActive && room.ExpiredBy(now) {
			room.Status = models.RoomExpired
			due = append(due, room)
		}
	}

	if len(due) > 0 {
		metric.SetRoomsActive(r.activeCountLocked())
	}

	return due
}

// ListOpen returns active rooms, newest first.
func (r *roomRegistry) ListOpen() []*models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()

	open := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if room.AcceptsTrafficAt(now) {
			open = append(open, room)
		}
	}

	sort.Slice(open, func(i, j int) bool {
		return open[i].CreatedAt.After(open[j].CreatedAt)
	})

	return open
}

func (r *roomRegistry) activeCountLocked() int {
	count := 0
	for _, room := range r.rooms {
		if room.Status == models.RoomActive {
			count++
		}
	}

	return count
}
