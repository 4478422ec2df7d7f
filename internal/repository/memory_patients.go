package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"hrss-server/internal/domain"
)

type MemoryPatientsRepo struct {
	mu       sync.RWMutex
	patients map[int]domain.Patient // patient_id -> record
}

func NewMemoryPatientsRepo() *MemoryPatientsRepo {
	return &MemoryPatientsRepo{
		patients: map[int]domain.Patient{},
	}
}

func (r *MemoryPatientsRepo) Add(_ context.Context, p domain.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.HeartRateHistory == nil {
		p.HeartRateHistory = map[string]int{}
	}
	r.patients[p.PatientID] = p
	return nil
}

func (r *MemoryPatientsRepo) Get(_ context.Context, patientID int) (*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[patientID]
	if !ok {
		return nil, nil
	}
	return clonePatient(p), nil
}

func (r *MemoryPatientsRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients), nil
}

func (r *MemoryPatientsRepo) List(_ context.Context) ([]domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		all = append(all, *clonePatient(p))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].PatientID < all[j].PatientID
	})
	return all, nil
}

func (r *MemoryPatientsRepo) ListByAttending(_ context.Context, username string) ([]domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Patient
	for _, p := range r.patients {
		if p.AttendingUsername == username {
			matched = append(matched, *clonePatient(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PatientID < matched[j].PatientID
	})
	return matched, nil
}

// AddHeartRate writes one reading. A reading with a timestamp already
// present overwrites the earlier value.
func (r *MemoryPatientsRepo) AddHeartRate(_ context.Context, patientID int, timestamp string, bpm int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[patientID]
	if !ok {
		return fmt.Errorf("patient %d not found", patientID)
	}
	if p.HeartRateHistory == nil {
		p.HeartRateHistory = map[string]int{}
	}
	p.HeartRateHistory[timestamp] = bpm
	r.patients[patientID] = p
	return nil
}

// clonePatient copies the history map so callers never share it with
// the repo's own state.
func clonePatient(p domain.Patient) *domain.Patient {
	history := make(map[string]int, len(p.HeartRateHistory))
	for k, v := range p.HeartRateHistory {
		history[k] = v
	}
	p.HeartRateHistory = history
	return &p
}
