package repository

import (
	"context"
	"sync"

	"hrss-server/internal/domain"
)

type MemoryAdminsRepo struct {
	mu     sync.RWMutex
	admins map[string]domain.Administrator // admin_username -> record
}

func NewMemoryAdminsRepo() *MemoryAdminsRepo {
	return &MemoryAdminsRepo{
		admins: map[string]domain.Administrator{},
	}
}

func (r *MemoryAdminsRepo) Add(_ context.Context, a domain.Administrator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[a.AdminUsername] = a
	return nil
}

func (r *MemoryAdminsRepo) Get(_ context.Context, username string) (*domain.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *MemoryAdminsRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.admins), nil
}
