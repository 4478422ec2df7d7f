package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"hrss-server/internal/repository"
	"hrss-server/internal/validation"
)

const idPattern = "^[0-9][0-9]*$"

var idRegexp = regexp.MustCompile(`\A[0-9][0-9]*\z`)

func newPatientSchema() validation.Schema {
	return validation.Schema{
		"patient_id": {
			Required: true,
			Types:    []string{validation.TypeInteger, validation.TypeString},
			TypeList: true,
			Regex:    idPattern, // can have leading 0
		},
		"attending_username": {
			Required: true,
			Types:    []string{validation.TypeString},
			Regex:    "^[A-Z][a-z]*.[A-Z]", // "LastName.FirstInitial" such as "Smith.J"
		},
		"patient_age": {
			Required: true,
			Types:    []string{validation.TypeInteger, validation.TypeString},
			TypeList: true,
			Regex:    idPattern,
			Min:      1, // all patients will be one year old or older
			HasMin:   true,
		},
	}
}

func heartRateSchema() validation.Schema {
	return validation.Schema{
		"patient_id": {
			Required: true,
			Types:    []string{validation.TypeInteger, validation.TypeString},
			TypeList: true,
			Regex:    idPattern,
		},
		"heart_rate": {
			Required: true,
			Types:    []string{validation.TypeInteger, validation.TypeString},
			TypeList: true,
			Regex:    idPattern, // the heart_rate can't be a decimal
		},
	}
}

func newAttendingSchema() validation.Schema {
	return validation.Schema{
		"attending_username": {
			Required: true,
			Types:    []string{validation.TypeString},
		},
		"attending_email": {
			Required: true,
			Types:    []string{validation.TypeString},
		},
		"attending_phone": {
			Required: true,
			Types:    []string{validation.TypeString},
			TypeList: true,
		},
	}
}

// patientIDFormatValidate checks a path-style patient id: an integer or
// a string of digits.
func patientIDFormatValidate(patientID any) (bool, []string) {
	if _, ok := validation.IntValue(patientID); ok {
		if idRegexp.MatchString(validation.StringValue(patientID)) {
			return true, nil
		}
	}
	return false, []string{"The patient_id's data format is wrong."}
}

// patientIDValueValidate runs the format check and then looks the id
// up. The absent-id wording depends on whether the patient table has
// any rows: an empty table gets the short form, a populated table the
// endpoint form passed in by the caller.
func patientIDValueValidate(ctx context.Context, patients repository.PatientsRepo, patientID any, absentMsg string) (bool, []string, error) {
	if ok, msgs := patientIDFormatValidate(patientID); !ok {
		return false, msgs, nil
	}
	id, _ := validation.IntValue(patientID)
	n, err := patients.Count(ctx)
	if err != nil {
		return false, nil, err
	}
	if n == 0 {
		return false, []string{"This patient_id does not exist."}, nil
	}
	p, err := patients.Get(ctx, id)
	if err != nil {
		return false, nil, err
	}
	if p == nil {
		return false, []string{absentMsg}, nil
	}
	return true, nil, nil
}

// failureBody joins the validation messages with the endpoint's hint
// line. The hint switches to emptyHint when the relevant table has no
// rows, whatever the failure was.
func failureBody(msgs []string, tableEmpty bool, emptyHint string) string {
	hint := "Fix and request again."
	if tableEmpty {
		hint = emptyHint
	}
	return strings.Join(msgs, "\n") + "\n" + hint
}

const sinceTimeFormat = "%Y-%m-%d %H:%M:%S"

// parseSinceTime handles the heart_rate_average_since field. Only the
// full timestamp form is accepted.
func parseSinceTime(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	if _, err := time.Parse("2006-01-02 15:04:05", s); err != nil {
		return "", false
	}
	return s, true
}

func sinceTimeCoerceMsg(value any) string {
	return fmt.Sprintf("Field \"heart_rate_average_since\" field 'heart_rate_average_since' cannot be coerced: time data '%s' does not match format '%s'.",
		validation.StringValue(value), sinceTimeFormat)
}
