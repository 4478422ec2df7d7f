package service

import (
	"bytes"
	"context"
	"fmt"

	"hrss-server/internal/domain"

	"github.com/xuri/excelize/v2"
)

// PatientRosterHeader is the column layout of the admin roster export.
var PatientRosterHeader = []string{
	"Patient ID",
	"Attending Username",
	"Patient Age",
	"Readings",
	"Last Measurement",
}

// ExportPatients builds the admin patient-roster XLSX after the usual
// credential check.
func (s *AdminService) ExportPatients(ctx context.Context, in any) ([]byte, any, int) {
	if _, body, status := s.authorize(ctx, in, 2); body != nil {
		return nil, body, status
	}
	patients, err := s.patients.List(ctx)
	if err != nil {
		body, status := s.storeFailure(err)
		return nil, body, status
	}
	if len(patients) == 0 {
		return nil, noPatientMsg, 400
	}

	data, err := generatePatientRoster(patients)
	if err != nil {
		body, status := s.storeFailure(err)
		return nil, body, status
	}
	return data, nil, 200
}

func generatePatientRoster(patients []domain.Patient) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Patients"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range PatientRosterHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, p := range patients {
		row := rowIdx + 2
		last := ""
		if timestamps := p.SortedTimestamps(); len(timestamps) > 0 {
			last = timestamps[len(timestamps)-1]
		}
		values := []any{p.PatientID, p.AttendingUsername, p.PatientAge, len(p.HeartRateHistory), last}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}
