package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/infra/adapters/postgres/repository"
)

var _ repository.UserRepository = (*userRepository)(nil)

type userRepository struct {
	byID  map[uuid.UUID]*models.User
	byUSN map[string]*models.User

	mu sync.RWMutex
}

func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:  make(map[uuid.UUID]*models.User),
		byUSN: make(map[string]*models.User),
	}
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUSN[user.USN]; taken {
		return apperror.ErrAlreadyRegistered
	}

	u := *user
	r.byID[u.ID] = &u
	r.byUSN[u.USN] = &u

	return nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	u := *user
	return &u, nil
}

func (r *userRepository) GetByUSN(_ context.Context, usn string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byUSN[usn]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	u := *user
	return &u, nil
}
