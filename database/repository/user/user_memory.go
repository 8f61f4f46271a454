package userRepo

import (
	"context"
	"strings"
	"sync"
	"time"

	"medibook/database/repository"
	"medibook/models"
)

// MemoryUserRepo keeps users in process memory.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]models.User)}
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemoryUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if phone != "" && u.PhoneNumber == phone {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemoryUserRepo) Create(_ context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	r.mu.Lock()
	defer r.mu.Unlock()
	user.PhoneNumber = strings.TrimSpace(user.PhoneNumber)
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateUser
		}
	}
	if user.PhoneNumber != "" {
		for _, u := range r.users {
			if u.PhoneNumber == user.PhoneNumber {
				return ErrDuplicatePhone
			}
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}
