package service

import (
	"context"
	"testing"

	"hrss-server/internal/domain"
	"hrss-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	attendings *repository.MemoryAttendingsRepo
	patients   *repository.MemoryPatientsRepo
	admins     *repository.MemoryAdminsRepo
}

func newFixture() *fixture {
	return &fixture{
		attendings: repository.NewMemoryAttendingsRepo(),
		patients:   repository.NewMemoryPatientsRepo(),
		admins:     repository.NewMemoryAdminsRepo(),
	}
}

func (f *fixture) addAttending(t *testing.T, username, email string) {
	t.Helper()
	require.NoError(t, f.attendings.Add(context.Background(), domain.Attending{
		AttendingUsername: username,
		AttendingEmail:    email,
		AttendingPhone:    "228-677-1325",
	}))
}

func (f *fixture) addPatient(t *testing.T, id int, username string, age int, history map[string]int) {
	t.Helper()
	require.NoError(t, f.patients.Add(context.Background(), domain.Patient{
		PatientID:         id,
		AttendingUsername: username,
		PatientAge:        age,
		HeartRateHistory:  history,
	}))
}

func TestNewAttending_Success(t *testing.T) {
	f := newFixture()
	svc := NewRegistrationService(f.attendings, f.patients, f.admins, zap.NewNop())

	body, status := svc.NewAttending(context.Background(), map[string]any{
		"attending_username": "Banks.J",
		"attending_email":    "DrBanksJohn@BLH_hospital.com",
		"attending_phone":    "228-677-1325",
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, "New attending physician with username Banks.J was successfully added into the physician database.", body)

	a, err := f.attendings.Get(context.Background(), "Banks.J")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "DrBanksJohn@BLH_hospital.com", a.AttendingEmail)
}

func TestNewAttending_TypeFailures(t *testing.T) {
	f := newFixture()
	svc := NewRegistrationService(f.attendings, f.patients, f.admins, zap.NewNop())

	body, status := svc.NewAttending(context.Background(), map[string]any{
		"attending_username": 123,
		"attending_email":    "sada",
		"attending_phone":    12313,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Field \"attending_phone\" must be of ['string'] type.\n"+
		"Field \"attending_username\" must be of string type.\n"+
		"Fix and request again.", body)
}

func TestNewAttending_DuplicateUsername(t *testing.T) {
	f := newFixture()
	f.addAttending(t, "Banks.J", "DrBanksJohn@BLH_hospital.com")
	svc := NewRegistrationService(f.attendings, f.patients, f.admins, zap.NewNop())

	body, status := svc.NewAttending(context.Background(), map[string]any{
		"attending_username": "Banks.J",
		"attending_email":    "other@BLH_hospital.com",
		"attending_phone":    "111-222-3333",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "This attending_username is already in use.\nFix and request again.", body)
}

func TestNewPatient_Success(t *testing.T) {
	f := newFixture()
	f.addAttending(t, "Banks.J", "DrBanksJohn@BLH_hospital.com")

	core, logs := observer.New(zap.InfoLevel)
	svc := NewRegistrationService(f.attendings, f.patients, f.admins, zap.New(core))

	body, status := svc.NewPatient(context.Background(), map[string]any{
		"patient_id":         "39",
		"attending_username": "Banks.J",
		"patient_age":        "25",
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, "Patient with id 39 was successfully added into the patient database.", body)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "Patient with id 39 was successfully added into the patient database.", entries[0].Message)

	p, err := f.patients.Get(context.Background(), 39)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 25, p.PatientAge)
	assert.Empty(t, p.HeartRateHistory)
}

func TestNewPatient_EmptyPhysicianHint(t *testing.T) {
	f := newFixture()
	svc := NewRegistrationService(f.attendings, f.patients, f.admins, zap.NewNop())

	body, status := svc.NewPatient(context.Background(), map[string]any{
		"patient_id":         820,
		"attending_username": "Banks.J",
		"patient_age":        25,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "No matching attending physician from physician database.\n"+
		"The physician database is empty. You need to have at least 1 physician "+
		"available to start to register for new patients.", body)
}

func TestNewPatient_RegexFailureKeepsEmptyDBHint(t *testing.T) {
	f := newFixture()
	svc := NewRegistrationService(f.attendings, f.patients, f.admins, zap.NewNop())

	body, status := svc.NewPatient(context.Background(), map[string]any{
		"patient_id":         "l820",
		"attending_username": "Banks.J",
		"patient_age":        25,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Field \"patient_id\" value does not match regex '^[0-9][0-9]*$'.\n"+
		"The physician database is empty. You need to have at least 1 physician "+
		"available to start to register for new patients.", body)
}

func TestNewPatient_ValueFailures(t *testing.T) {
	f := newFixture()
	f.addAttending(t, "Banks.J", "DrBanksJohn@BLH_hospital.com")
	f.addPatient(t, 8, "Banks.J", 56, nil)
	svc := NewRegistrationService(f.attendings, f.patients, f.admins, zap.NewNop())

	body, status := svc.NewPatient(context.Background(), map[string]any{
		"patient_id":         8,
		"attending_username": "Apple.A",
		"patient_age":        25,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "This patient_id is already in use.\n"+
		"No matching attending physician from physician database.\n"+
		"Fix and request again.", body)
}

func TestNewPatient_NonMappingInput(t *testing.T) {
	f := newFixture()
	f.addAttending(t, "Banks.J", "DrBanksJohn@BLH_hospital.com")
	svc := NewRegistrationService(f.attendings, f.patients, f.admins, zap.NewNop())

	body, status := svc.NewPatient(context.Background(), []any{map[string]any{"patient_id": 39}})
	assert.Equal(t, 400, status)
	assert.Equal(t, "The input data need to be a dictionary.\nFix and request again.", body)
}
