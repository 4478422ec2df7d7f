package repository

import (
	"context"
	"testing"

	"hrss-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAttendingsRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAttendingsRepo()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	a, err := repo.Get(ctx, "Banks.J")
	require.NoError(t, err)
	assert.Nil(t, a)

	require.NoError(t, repo.Add(ctx, domain.Attending{
		AttendingUsername: "Dixon.K",
		AttendingEmail:    "DrDixonKathleen@BLH_hospital.com",
		AttendingPhone:    "228-677-1325",
	}))
	require.NoError(t, repo.Add(ctx, domain.Attending{
		AttendingUsername: "Banks.J",
		AttendingEmail:    "DrBanksJohn@BLH_hospital.com",
		AttendingPhone:    "720-473-9173",
	}))

	a, err = repo.Get(ctx, "Dixon.K")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "DrDixonKathleen@BLH_hospital.com", a.AttendingEmail)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// sorted by username
	assert.Equal(t, "Banks.J", all[0].AttendingUsername)
	assert.Equal(t, "Dixon.K", all[1].AttendingUsername)
}

func TestMemoryPatientsRepo_HeartRateHistory(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPatientsRepo()

	require.NoError(t, repo.Add(ctx, domain.Patient{
		PatientID:         82,
		AttendingUsername: "Dixon.K",
		PatientAge:        54,
	}))

	p, err := repo.Get(ctx, 82)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Empty(t, p.HeartRateHistory)

	require.NoError(t, repo.AddHeartRate(ctx, 82, "2019-07-25 12:35:24", 111))
	require.NoError(t, repo.AddHeartRate(ctx, 82, "2016-07-10 13:12:48", 88))

	p, err = repo.Get(ctx, 82)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"2016-07-10 13:12:48": 88,
		"2019-07-25 12:35:24": 111,
	}, p.HeartRateHistory)
	assert.Equal(t, []string{"2016-07-10 13:12:48", "2019-07-25 12:35:24"}, p.SortedTimestamps())

	// mutating the returned copy must not touch the stored record
	p.HeartRateHistory["2020-01-01 00:00:00"] = 60
	p2, err := repo.Get(ctx, 82)
	require.NoError(t, err)
	assert.Len(t, p2.HeartRateHistory, 2)

	err = repo.AddHeartRate(ctx, 999, "2020-01-01 00:00:00", 60)
	assert.Error(t, err)
}

func TestMemoryPatientsRepo_ListByAttending(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPatientsRepo()

	require.NoError(t, repo.Add(ctx, domain.Patient{PatientID: 8, AttendingUsername: "Cline.A", PatientAge: 56}))
	require.NoError(t, repo.Add(ctx, domain.Patient{PatientID: 3, AttendingUsername: "Bowen.K", PatientAge: 32}))
	require.NoError(t, repo.Add(ctx, domain.Patient{PatientID: 2, AttendingUsername: "Cline.A", PatientAge: 54}))

	matched, err := repo.ListByAttending(ctx, "Cline.A")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, 2, matched[0].PatientID)
	assert.Equal(t, 8, matched[1].PatientID)

	none, err := repo.ListByAttending(ctx, "Patel.R")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryAdminsRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAdminsRepo()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, repo.Add(ctx, domain.Administrator{AdminUsername: "admin 1", AdminPassword: "asdfgh12"}))

	a, err := repo.Get(ctx, "admin 1")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "asdfgh12", a.AdminPassword)

	missing, err := repo.Get(ctx, "DavidH")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
