package service

import (
	"context"
	"fmt"
	"time"

	"hrss-server/internal/domain"
	"hrss-server/internal/notify"
	"hrss-server/internal/repository"
	"hrss-server/internal/validation"

	"go.uber.org/zap"
)

// AlertSender is the address tachycardia alert mail goes out from.
const AlertSender = "tachycardic_heart_rate@BLH_hospital.com"

const (
	emptyPatientHintHeartRate = "The patient database is empty. You need to have at least 1 patient available to register for new heart rate measurement."
	emptyPatientHintStatus    = "The patient database is empty. You need to have at least 1 patient available to get the info of the last heart rate measurement of a patient."
	emptyPatientHintList      = "The patient database is empty. You need to have at least 1 patient available to get all the heart rates in a list of a patient."
	emptyPatientHintAverage   = "The patient database is empty. You need to have at least 1 patient available to get the average of all heart rates of a patient."
	emptyPatientHintInterval  = "The patient database is empty. You need to have at least 1 patient available to get the interval average of the heart rates of a patient."

	emptyPhysicianHintPatients = "The physician database is empty. You need to have at least 1 physician available to get the patients of an attending physician."

	absentInDatabaseMsg = "This patient_id does not exist in the patient database."
	noHistoryMsg        = "This patient has no heart rate history yet."
)

// PatientStatus is the body of a successful status lookup.
type PatientStatus struct {
	HeartRate int    `json:"heart_rate"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// PatientSummary is one row of the patients-by-attending and
// all_patients listings.
type PatientSummary struct {
	PatientID         int    `json:"patient_id"`
	AttendingUsername string `json:"attending_username"`
	PatientAge        int    `json:"patient_age"`
}

// VitalsService handles heart-rate submissions and the per-patient
// query endpoints.
type VitalsService struct {
	attendings repository.AttendingsRepo
	patients   repository.PatientsRepo
	mailer     notify.Mailer
	logger     *zap.Logger
	now        func() time.Time
}

func NewVitalsService(attendings repository.AttendingsRepo, patients repository.PatientsRepo, mailer notify.Mailer, logger *zap.Logger) *VitalsService {
	return &VitalsService{
		attendings: attendings,
		patients:   patients,
		mailer:     mailer,
		logger:     logger,
		now:        time.Now,
	}
}

// AddHeartRate records a reading stamped with the arrival time. A
// tachycardic reading additionally mails the patient's attending and
// logs a warning; a normal reading does neither.
func (s *VitalsService) AddHeartRate(ctx context.Context, in any) (any, int) {
	ok, msgs := validation.Validate(in, heartRateSchema())
	var patient *domain.Patient
	if ok {
		data := in.(map[string]any)
		patientID, _ := validation.IntValue(data["patient_id"])
		p, err := s.patients.Get(ctx, patientID)
		if err != nil {
			return s.storeFailure(err)
		}
		if p == nil {
			ok = false
			msgs = []string{"This patient_id does not exist."}
		}
		patient = p
	}
	if !ok {
		n, err := s.patients.Count(ctx)
		if err != nil {
			return s.storeFailure(err)
		}
		return failureBody(msgs, n == 0, emptyPatientHintHeartRate), 400
	}

	data := in.(map[string]any)
	heartRate, _ := validation.IntValue(data["heart_rate"])
	timestamp := s.now().Format(domain.TimestampLayout)
	if err := s.patients.AddHeartRate(ctx, patient.PatientID, timestamp, heartRate); err != nil {
		return s.storeFailure(err)
	}

	msg := fmt.Sprintf("Patient with id %d had a new heart rate measurement successfully added into the heart rate history.", patient.PatientID)
	if !Tachycardic(patient.PatientAge, heartRate) {
		return msg, 200
	}

	email := s.attendingEmail(ctx, patient.AttendingUsername)
	if email == "" {
		s.logger.Error("no attending record for tachycardia alert",
			zap.Int("patient_id", patient.PatientID),
			zap.String("attending_username", patient.AttendingUsername))
		return msg, 200
	}
	body := fmt.Sprintf("Patient with id %d has a tachycardic heart rate as %d bpm.", patient.PatientID, heartRate)
	if err := s.mailer.Send(ctx, AlertSender, email, "Tachycardic heart rate alert", body); err != nil {
		s.logger.Error("alert email send failed", zap.Error(err), zap.String("to", email))
	}
	s.logger.Warn(fmt.Sprintf("Patient with id %d has a tachycardic heart rate as %d bpm. An email has been sent to corresponding physician at %s",
		patient.PatientID, heartRate, email))
	return fmt.Sprintf("E-mail sent to %s from %s\n%s", email, AlertSender, msg), 200
}

// Status reports the chronologically latest reading of a patient.
func (s *VitalsService) Status(ctx context.Context, patientID any) (any, int) {
	patient, body, status := s.lookupWithHistory(ctx, patientID, absentInDatabaseMsg, emptyPatientHintStatus)
	if patient == nil {
		return body, status
	}

	timestamps := patient.SortedTimestamps()
	latest := timestamps[len(timestamps)-1]
	heartRate := patient.HeartRateHistory[latest]
	state := "not tachycardic"
	if Tachycardic(patient.PatientAge, heartRate) {
		state = "tachycardic"
	}
	return PatientStatus{HeartRate: heartRate, Status: state, Timestamp: latest}, 200
}

// HeartRateList returns all readings of a patient, oldest first.
func (s *VitalsService) HeartRateList(ctx context.Context, patientID any) (any, int) {
	patient, body, status := s.lookupWithHistory(ctx, patientID, absentInDatabaseMsg, emptyPatientHintList)
	if patient == nil {
		return body, status
	}

	timestamps := patient.SortedTimestamps()
	rates := make([]int, 0, len(timestamps))
	for _, ts := range timestamps {
		rates = append(rates, patient.HeartRateHistory[ts])
	}
	return rates, 200
}

// HeartRateAverage returns the mean of all readings of a patient.
func (s *VitalsService) HeartRateAverage(ctx context.Context, patientID any) (any, int) {
	patient, body, status := s.lookupWithHistory(ctx, patientID, absentInDatabaseMsg, emptyPatientHintAverage)
	if patient == nil {
		return body, status
	}
	return AverageSince(patient.HeartRateHistory, ""), 200
}

// IntervalAverage returns the mean of the readings at or after the
// heart_rate_average_since timestamp.
func (s *VitalsService) IntervalAverage(ctx context.Context, in any) (any, int) {
	ok, msgs := s.intervalTypeValidate(in)
	var patient *domain.Patient
	var since string
	if ok {
		data := in.(map[string]any)
		since, _ = parseSinceTime(data["heart_rate_average_since"])

		valueOK, valueMsgs, err := patientIDValueValidate(ctx, s.patients, data["patient_id"], "This patient_id does not exist.")
		if err != nil {
			return s.storeFailure(err)
		}
		ok, msgs = valueOK, valueMsgs
		if ok {
			patientID, _ := validation.IntValue(data["patient_id"])
			p, err := s.patients.Get(ctx, patientID)
			if err != nil {
				return s.storeFailure(err)
			}
			patient = p
			if len(patient.HeartRateHistory) == 0 {
				ok = false
				msgs = []string{noHistoryMsg}
			}
		}
	}
	if !ok {
		n, err := s.patients.Count(ctx)
		if err != nil {
			return s.storeFailure(err)
		}
		return failureBody(msgs, n == 0, emptyPatientHintInterval), 400
	}

	filtered := map[string]int{}
	for ts, rate := range patient.HeartRateHistory {
		if ts >= since {
			filtered[ts] = rate
		}
	}
	if len(filtered) == 0 {
		return failureBody([]string{noHistoryMsg}, false, emptyPatientHintInterval), 400
	}
	return AverageSince(filtered, ""), 200
}

// intervalTypeValidate runs the schema check for patient_id and the
// time coercion for heart_rate_average_since, reporting messages in
// field-name order.
func (s *VitalsService) intervalTypeValidate(in any) (bool, []string) {
	data, isMap := in.(map[string]any)
	if !isMap {
		return false, []string{"The input data need to be a dictionary."}
	}

	var msgs []string

	// heart_rate_average_since sorts before patient_id
	since, present := data["heart_rate_average_since"]
	if !present {
		msgs = append(msgs, `Field "heart_rate_average_since" required field.`)
	} else if _, ok := parseSinceTime(since); !ok {
		msgs = append(msgs, sinceTimeCoerceMsg(since))
	}

	idSchema := validation.Schema{"patient_id": heartRateSchema()["patient_id"]}
	if _, idMsgs := validation.Validate(data, idSchema); len(idMsgs) > 0 {
		msgs = append(msgs, idMsgs...)
	}

	return len(msgs) == 0, msgs
}

// PatientsByAttending lists an attending's patients.
func (s *VitalsService) PatientsByAttending(ctx context.Context, username string) (any, int) {
	attending, err := s.attendings.Get(ctx, username)
	if err != nil {
		return s.storeFailure(err)
	}
	if attending == nil {
		n, err := s.attendings.Count(ctx)
		if err != nil {
			return s.storeFailure(err)
		}
		return failureBody([]string{"No matching attending physician from physician database."}, n == 0, emptyPhysicianHintPatients), 400
	}

	patients, err := s.patients.ListByAttending(ctx, username)
	if err != nil {
		return s.storeFailure(err)
	}
	summaries := make([]PatientSummary, 0, len(patients))
	for _, p := range patients {
		summaries = append(summaries, PatientSummary{
			PatientID:         p.PatientID,
			AttendingUsername: p.AttendingUsername,
			PatientAge:        p.PatientAge,
		})
	}
	return summaries, 200
}

// lookupWithHistory validates a path patient id, fetches the record
// and requires a non-empty history. It returns a nil patient plus the
// ready failure body when any step misses.
func (s *VitalsService) lookupWithHistory(ctx context.Context, patientID any, absentMsg, emptyHint string) (*domain.Patient, any, int) {
	ok, msgs, err := patientIDValueValidate(ctx, s.patients, patientID, absentMsg)
	if err != nil {
		body, status := s.storeFailure(err)
		return nil, body, status
	}
	var patient *domain.Patient
	if ok {
		id, _ := validation.IntValue(patientID)
		patient, err = s.patients.Get(ctx, id)
		if err != nil {
			body, status := s.storeFailure(err)
			return nil, body, status
		}
		if len(patient.HeartRateHistory) == 0 {
			ok = false
			msgs = []string{noHistoryMsg}
			patient = nil
		}
	}
	if !ok {
		n, err := s.patients.Count(ctx)
		if err != nil {
			body, status := s.storeFailure(err)
			return nil, body, status
		}
		return nil, failureBody(msgs, n == 0, emptyHint), 400
	}
	return patient, nil, 200
}

func (s *VitalsService) attendingEmail(ctx context.Context, username string) string {
	attending, err := s.attendings.Get(ctx, username)
	if err != nil || attending == nil {
		return ""
	}
	return attending.AttendingEmail
}

func (s *VitalsService) storeFailure(err error) (any, int) {
	s.logger.Error("record store failure", zap.Error(err))
	return "Internal server error", 500
}
