package seed

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hrss-server/internal/domain"
	"hrss-server/internal/repository"

	"go.uber.org/zap"
)

// File names looked for in the seed directory. Missing files are
// skipped silently so a partial fixture set still loads.
const (
	physicianFile = "physicians_data.csv"
	patientFile   = "patients_clean_data.csv"
	adminFile     = "admin_data.csv"
)

// Load reads initial rows from CSV files in dir into the repos.
// The patient file's heart_rate_history column holds a JSON object of
// "timestamp": bpm pairs; an empty cell means no history.
func Load(ctx context.Context, dir string, attendings repository.AttendingsRepo, patients repository.PatientsRepo, admins repository.AdminsRepo, logger *zap.Logger) error {
	if err := loadAttendings(ctx, filepath.Join(dir, physicianFile), attendings); err != nil {
		return err
	}
	if err := loadPatients(ctx, filepath.Join(dir, patientFile), patients); err != nil {
		return err
	}
	if err := loadAdmins(ctx, filepath.Join(dir, adminFile), admins); err != nil {
		return err
	}
	logger.Info("seed data loaded", zap.String("dir", dir))
	return nil
}

func loadAttendings(ctx context.Context, path string, repo repository.AttendingsRepo) error {
	rows, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}
	for i, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("%s row %d: want 3 columns, got %d", path, i+2, len(row))
		}
		a := domain.Attending{
			AttendingUsername: row[0],
			AttendingEmail:    row[1],
			AttendingPhone:    row[2],
		}
		if err := repo.Add(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func loadPatients(ctx context.Context, path string, repo repository.PatientsRepo) error {
	rows, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}
	for i, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("%s row %d: want at least 3 columns, got %d", path, i+2, len(row))
		}
		patientID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return fmt.Errorf("%s row %d: bad patient_id %q", path, i+2, row[0])
		}
		patientAge, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return fmt.Errorf("%s row %d: bad patient_age %q", path, i+2, row[2])
		}
		history := map[string]int{}
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			if err := json.Unmarshal([]byte(row[3]), &history); err != nil {
				return fmt.Errorf("%s row %d: bad heart_rate_history: %w", path, i+2, err)
			}
		}
		p := domain.Patient{
			PatientID:         patientID,
			AttendingUsername: row[1],
			PatientAge:        patientAge,
			HeartRateHistory:  history,
		}
		if err := repo.Add(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func loadAdmins(ctx context.Context, path string, repo repository.AdminsRepo) error {
	rows, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}
	for i, row := range rows {
		if len(row) < 2 {
			return fmt.Errorf("%s row %d: want 2 columns, got %d", path, i+2, len(row))
		}
		a := domain.Administrator{
			AdminUsername: row[0],
			AdminPassword: row[1],
		}
		if err := repo.Add(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// readCSV returns the data rows of path without the header, or nil
// when the file does not exist.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
