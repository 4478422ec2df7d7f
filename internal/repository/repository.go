package repository

import (
	"context"

	"hrss-server/internal/domain"
)

// Record repositories. All Get methods return (nil, nil) on a miss so
// callers can distinguish "absent" from a backend failure.
//
// Attendings and patients are append-only. The only mutation after a
// record is created is AddHeartRate, which writes one timestamped
// reading into the patient's history.

type AttendingsRepo interface {
	Add(ctx context.Context, a domain.Attending) error
	Get(ctx context.Context, username string) (*domain.Attending, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]domain.Attending, error)
}

type PatientsRepo interface {
	Add(ctx context.Context, p domain.Patient) error
	Get(ctx context.Context, patientID int) (*domain.Patient, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]domain.Patient, error)
	ListByAttending(ctx context.Context, username string) ([]domain.Patient, error)
	AddHeartRate(ctx context.Context, patientID int, timestamp string, bpm int) error
}

type AdminsRepo interface {
	Add(ctx context.Context, a domain.Administrator) error
	Get(ctx context.Context, username string) (*domain.Administrator, error)
	Count(ctx context.Context) (int, error)
}
