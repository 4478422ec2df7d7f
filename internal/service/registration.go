package service

import (
	"context"
	"fmt"

	"hrss-server/internal/domain"
	"hrss-server/internal/repository"
	"hrss-server/internal/validation"

	"go.uber.org/zap"
)

const emptyPhysicianHintNewPatient = "The physician database is empty. You need to have at least 1 physician available to start to register for new patients."

// RegistrationService handles attending, patient and administrator
// registration. Request bodies arrive as decoded JSON values; every
// method returns the response body plus an HTTP status code, never an
// error for a bad request.
type RegistrationService struct {
	attendings repository.AttendingsRepo
	patients   repository.PatientsRepo
	admins     repository.AdminsRepo
	logger     *zap.Logger
}

func NewRegistrationService(attendings repository.AttendingsRepo, patients repository.PatientsRepo, admins repository.AdminsRepo, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		attendings: attendings,
		patients:   patients,
		admins:     admins,
		logger:     logger,
	}
}

// NewAttending registers an attending physician.
func (s *RegistrationService) NewAttending(ctx context.Context, in any) (any, int) {
	ok, msgs := validation.Validate(in, newAttendingSchema())
	if ok {
		data := in.(map[string]any)
		username := data["attending_username"].(string)
		existing, err := s.attendings.Get(ctx, username)
		if err != nil {
			return s.storeFailure(err)
		}
		if existing != nil {
			ok = false
			msgs = []string{"This attending_username is already in use."}
		}
	}
	if !ok {
		return failureBody(msgs, false, ""), 400
	}

	data := in.(map[string]any)
	a := domain.Attending{
		AttendingUsername: data["attending_username"].(string),
		AttendingEmail:    data["attending_email"].(string),
		AttendingPhone:    data["attending_phone"].(string),
	}
	if err := s.attendings.Add(ctx, a); err != nil {
		return s.storeFailure(err)
	}

	msg := fmt.Sprintf("New attending physician with username %s was successfully added into the physician database.", a.AttendingUsername)
	s.logger.Info(msg)
	return msg, 200
}

// NewPatient registers a patient under an existing attending.
func (s *RegistrationService) NewPatient(ctx context.Context, in any) (any, int) {
	ok, msgs := validation.Validate(in, newPatientSchema())
	if ok {
		valueOK, valueMsgs, err := s.newPatientValueValidate(ctx, in.(map[string]any))
		if err != nil {
			return s.storeFailure(err)
		}
		ok, msgs = valueOK, valueMsgs
	}
	if !ok {
		n, err := s.attendings.Count(ctx)
		if err != nil {
			return s.storeFailure(err)
		}
		return failureBody(msgs, n == 0, emptyPhysicianHintNewPatient), 400
	}

	data := in.(map[string]any)
	patientID, _ := validation.IntValue(data["patient_id"])
	patientAge, _ := validation.IntValue(data["patient_age"])
	p := domain.Patient{
		PatientID:         patientID,
		AttendingUsername: data["attending_username"].(string),
		PatientAge:        patientAge,
		HeartRateHistory:  map[string]int{},
	}
	if err := s.patients.Add(ctx, p); err != nil {
		return s.storeFailure(err)
	}

	msg := fmt.Sprintf("Patient with id %d was successfully added into the patient database.", patientID)
	s.logger.Info(msg)
	return msg, 200
}

// newPatientValueValidate cross-checks a type-valid body against the
// stores: the id must be new and the attending must exist. Both checks
// run so a doubly bad body reports both failures.
func (s *RegistrationService) newPatientValueValidate(ctx context.Context, data map[string]any) (bool, []string, error) {
	var msgs []string

	patientID, _ := validation.IntValue(data["patient_id"])
	existing, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return false, nil, err
	}
	if existing != nil {
		msgs = append(msgs, "This patient_id is already in use.")
	}

	username := data["attending_username"].(string)
	attending, err := s.attendings.Get(ctx, username)
	if err != nil {
		return false, nil, err
	}
	if attending == nil {
		msgs = append(msgs, "No matching attending physician from physician database.")
	}

	return len(msgs) == 0, msgs, nil
}

func (s *RegistrationService) storeFailure(err error) (any, int) {
	s.logger.Error("record store failure", zap.Error(err))
	return "Internal server error", 500
}
