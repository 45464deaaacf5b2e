package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/domain/output"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres/repository"
)

var _ repository.RegistrationRepository = (*registrationRepository)(nil)

type regKey struct {
	userID  uuid.UUID
	eventID uuid.UUID
}

// registrationRepository keeps registrations and tokens under one
// mutex, which is the whole trick: every check-then-write the contract
// demands (duplicate, capacity, redeem) happens while holding it.
type registrationRepository struct {
	events repository.EventRepository

	registrations map[regKey]*models.EventRegistration
	tokensByReg   map[uuid.UUID]*models.AccessToken
	tokensByValue map[string]*models.AccessToken
	perEventCount map[uuid.UUID]int

	mu sync.Mutex
}

func NewRegistrationRepository(events repository.EventRepository) repository.RegistrationRepository {
	return &registrationRepository{
		events:        events,
		registrations: make(map[regKey]*models.EventRegistration),
		tokensByReg:   make(map[uuid.UUID]*models.AccessToken),
		tokensByValue: make(map[string]*models.AccessToken),
		perEventCount: make(map[uuid.UUID]int),
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *models.EventRegistration, token *models.AccessToken) error {
	event, err := r.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := regKey{userID: reg.UserID, eventID: reg.EventID}
	if _, exists := r.registrations[key]; exists {
		return apperror.ErrAlreadyRegistered
	}

	if event.Capacity > 0 && r.perEventCount[reg.EventID] >= event.Capacity {
		return apperror.ErrCapacityExceeded
	}

	stored := *reg
	storedToken := *token

	r.registrations[key] = &stored
	r.tokensByReg[storedToken.RegistrationID] = &storedToken
	r.tokensByValue[storedToken.Value] = &storedToken
	r.perEventCount[reg.EventID]++

	return nil
}

func (r *registrationRepository) GetByUserAndEvent(_ context.Context, userID, eventID uuid.UUID) (*models.EventRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.registrations[regKey{userID: userID, eventID: eventID}]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	out := *reg
	return &out, nil
}

func (r *registrationRepository) ListTicketsByUser(_ context.Context, userID uuid.UUID) ([]output.RegistrationTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tickets []output.RegistrationTicket

	for key, reg := range r.registrations {
		if key.userID != userID {
			continue
		}

		token := r.tokensByReg[reg.ID]
		tickets = append(tickets, output.RegistrationTicket{
			Registration: *reg,
			TokenValue:   token.Value,
		})
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].Registration.CreatedAt.After(tickets[j].Registration.CreatedAt)
	})

	return tickets, nil
}

func (r *registrationRepository) Redeem(_ context.Context, tokenValue string, now time.Time) (*models.EventRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokensByValue[tokenValue]
	if !ok {
		return nil, apperror.ErrInvalidToken
	}

	if token.Consumed() {
		return nil, apperror.ErrAlreadyRedeemed
	}

	// Resolve the registration before touching the token so a failed
	// redeem never leaves a consumed token behind.
	var reg *models.EventRegistration
	for _, stored := range r.registrations {
		if stored.ID == token.RegistrationID {
			reg = stored
			break
		}
	}
	if reg == nil {
		return nil, apperror.ErrInvalidToken
	}

	consumed := now
	token.ConsumedAt = &consumed

	checkedIn := now
	reg.Status = models.RegistrationCheckedIn
	reg.CheckedInAt = &checkedIn

	out := *reg
	return &out, nil
}
