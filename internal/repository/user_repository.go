package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/port"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserDirectory() port.UserDirectory {
	return &userRepository{
		users: make(map[string]domain.User),
	}
}

func (r *userRepository) Register(_ context.Context, customerID, name, email string) error {
	user := domain.User{ID: customerID, Name: name, Email: email}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("user.Validate: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[customerID]; ok {
		return fmt.Errorf("user[%s]: %w", customerID, ErrAlreadyExists)
	}

	r.users[customerID] = user
	return nil
}

func (r *userRepository) Exists(_ context.Context, customerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[customerID]
	return ok, nil
}
