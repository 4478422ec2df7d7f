package repository

import (
	"context"
	"sort"
	"sync"

	"hrss-server/internal/domain"
)

// MemoryAttendingsRepo is the default backend when no redis is configured.
type MemoryAttendingsRepo struct {
	mu         sync.RWMutex
	attendings map[string]domain.Attending // attending_username -> record
}

func NewMemoryAttendingsRepo() *MemoryAttendingsRepo {
	return &MemoryAttendingsRepo{
		attendings: map[string]domain.Attending{},
	}
}

func (r *MemoryAttendingsRepo) Add(_ context.Context, a domain.Attending) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attendings[a.AttendingUsername] = a
	return nil
}

func (r *MemoryAttendingsRepo) Get(_ context.Context, username string) (*domain.Attending, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.attendings[username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *MemoryAttendingsRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.attendings), nil
}

func (r *MemoryAttendingsRepo) List(_ context.Context) ([]domain.Attending, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Attending, 0, len(r.attendings))
	for _, a := range r.attendings {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].AttendingUsername < all[j].AttendingUsername
	})
	return all, nil
}
