package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"hrss-server/internal/domain"
	"hrss-server/internal/repository"

	"go.uber.org/zap"
)

const (
	noAdminMsg        = "No registered administrator in the database, please register first"
	noPhysicianMsg    = "No physician information found"
	noPatientMsg      = "No patient information found"
	credentialPassMsg = "pass"
)

// TachycardiaReport is one row of the all_tachycardia result: a
// patient with at least one tachycardic reading since the cutoff.
type TachycardiaReport struct {
	PatientID           int      `json:"patient_id"`
	AttendingUsername   string   `json:"attending_username"`
	AttendingEmail      string   `json:"attending_email"`
	TachycardiaDatetime []string `json:"tachycardia_datetime"`
}

// AdminService handles administrator registration and the
// credential-gated report endpoints.
type AdminService struct {
	attendings repository.AttendingsRepo
	patients   repository.PatientsRepo
	admins     repository.AdminsRepo
	logger     *zap.Logger
}

func NewAdminService(attendings repository.AttendingsRepo, patients repository.PatientsRepo, admins repository.AdminsRepo, logger *zap.Logger) *AdminService {
	return &AdminService{
		attendings: attendings,
		patients:   patients,
		admins:     admins,
		logger:     logger,
	}
}

// NewAdministrator registers an administrator. The checks run in a
// fixed order and the first failure is the whole response.
func (s *AdminService) NewAdministrator(ctx context.Context, in any) (any, int) {
	data, isMap := in.(map[string]any)
	if !isMap {
		return "Wrong input data type", 400
	}
	if len(data) != 2 {
		return "Wrong input dictionary", 400
	}
	usernameRaw, hasUsername := data["admin_username"]
	passwordRaw, hasPassword := data["admin_password"]
	if !hasUsername || !hasPassword {
		return "Wrong key name", 400
	}
	username, usernameOK := usernameRaw.(string)
	password, passwordOK := passwordRaw.(string)
	if !usernameOK || !passwordOK {
		return "The username or password must be strings", 400
	}

	existing, err := s.admins.Get(ctx, username)
	if err != nil {
		return s.storeFailure(err)
	}
	if existing != nil {
		return "Username is already in use", 400
	}
	if strings.TrimSpace(username) == "" {
		return "Username can not be empty", 400
	}
	if msg := checkPassword(password); msg != credentialPassMsg {
		return msg, 400
	}

	if err := s.admins.Add(ctx, domain.Administrator{AdminUsername: username, AdminPassword: password}); err != nil {
		return s.storeFailure(err)
	}
	s.logger.Info("administrator registered", zap.String("admin_username", username))
	return "Successfully added new administrator information", 200
}

// checkPassword enforces the password rules: at least 8 characters,
// at least one letter and one digit, no spaces.
func checkPassword(password string) string {
	if len(password) < 8 {
		return "Password should have at least 8 characters"
	}
	var hasLetter, hasDigit, hasSpace bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsSpace(r):
			hasSpace = true
		}
	}
	if !hasLetter || !hasDigit || hasSpace {
		return "Password should contain at least one letter and one number without spaces"
	}
	return credentialPassMsg
}

// checkCredentials verifies the admin_username/admin_password pair in
// data. It returns "pass" or the failure message; the empty-table
// check comes before everything else.
func (s *AdminService) checkCredentials(ctx context.Context, data map[string]any) (string, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return noAdminMsg, nil
	}
	usernameRaw, hasUsername := data["admin_username"]
	passwordRaw, hasPassword := data["admin_password"]
	if !hasUsername || !hasPassword {
		return "Wrong key name", nil
	}
	username, usernameOK := usernameRaw.(string)
	password, passwordOK := passwordRaw.(string)
	if !usernameOK || !passwordOK {
		return "The username or password must be strings", nil
	}
	admin, err := s.admins.Get(ctx, username)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "Invalid username", nil
	}
	if admin.AdminPassword != password {
		return "Wrong password", nil
	}
	return credentialPassMsg, nil
}

// credentialStatus maps a non-pass credential message to its HTTP
// status: recognised-but-wrong credentials are 401, the rest 400.
func credentialStatus(msg string) int {
	if msg == "Invalid username" || msg == "Wrong password" {
		return 401
	}
	return 400
}

// authorize runs the shape checks shared by the report endpoints and
// then the credential check. wantKeys is the exact size the request
// object must have.
func (s *AdminService) authorize(ctx context.Context, in any, wantKeys int) (map[string]any, any, int) {
	data, isMap := in.(map[string]any)
	if !isMap {
		return nil, "Wrong input data type", 400
	}
	if len(data) != wantKeys {
		return nil, "Wrong input dictionary", 400
	}
	msg, err := s.checkCredentials(ctx, data)
	if err != nil {
		body, status := s.storeFailure(err)
		return nil, body, status
	}
	if msg != credentialPassMsg {
		return nil, msg, credentialStatus(msg)
	}
	return data, nil, 200
}

// AllAttendings lists every attending physician record.
func (s *AdminService) AllAttendings(ctx context.Context, in any) (any, int) {
	if _, body, status := s.authorize(ctx, in, 2); body != nil {
		return body, status
	}
	attendings, err := s.attendings.List(ctx)
	if err != nil {
		return s.storeFailure(err)
	}
	if len(attendings) == 0 {
		return noPhysicianMsg, 400
	}
	return attendings, 200
}

// AllPatients lists every patient record without the heart-rate
// history.
func (s *AdminService) AllPatients(ctx context.Context, in any) (any, int) {
	if _, body, status := s.authorize(ctx, in, 2); body != nil {
		return body, status
	}
	patients, err := s.patients.List(ctx)
	if err != nil {
		return s.storeFailure(err)
	}
	if len(patients) == 0 {
		return noPatientMsg, 400
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

// AllTachycardia reports, per patient, the tachycardic readings at or
// after since_time. Patients with no qualifying reading are omitted;
// an empty report is a 200 with an empty list.
func (s *AdminService) AllTachycardia(ctx context.Context, in any) (any, int) {
	data, body, status := s.authorize(ctx, in, 3)
	if body != nil {
		return body, status
	}

	sinceRaw, hasSince := data["since_time"]
	if !hasSince {
		return "Please provide a time point", 400
	}
	since, ok := parseReportSince(sinceRaw)
	if !ok {
		return "The time point should be in the format of 'yyyy-mm-dd hh:mm:ss', 'hh:mm:ss' is optional", 400
	}

	patients, err := s.patients.List(ctx)
	if err != nil {
		return s.storeFailure(err)
	}
	if len(patients) == 0 {
		return noPatientMsg, 400
	}
	attendings, err := s.attendings.List(ctx)
	if err != nil {
		return s.storeFailure(err)
	}
	if len(attendings) == 0 {
		return noPhysicianMsg, 400
	}
	emails := make(map[string]string, len(attendings))
	for _, a := range attendings {
		emails[a.AttendingUsername] = a.AttendingEmail
	}

	report := make([]TachycardiaReport, 0)
	for _, p := range patients {
		var hits []string
		for _, ts := range p.SortedTimestamps() {
			if ts >= since && ReportTachycardic(p.PatientAge, p.HeartRateHistory[ts]) {
				hits = append(hits, ts)
			}
		}
		if len(hits) == 0 {
			continue
		}
		report = append(report, TachycardiaReport{
			PatientID:           p.PatientID,
			AttendingUsername:   p.AttendingUsername,
			AttendingEmail:      emails[p.AttendingUsername],
			TachycardiaDatetime: hits,
		})
	}
	return report, 200
}

// parseReportSince accepts 'yyyy-mm-dd hh:mm:ss' or a bare
// 'yyyy-mm-dd', which means midnight of that day.
func parseReportSince(value any) (string, bool) {
	s, isString := value.(string)
	if !isString {
		return "", false
	}
	if _, err := time.Parse(domain.TimestampLayout, s); err == nil {
		return s, true
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s + " 00:00:00", true
	}
	return "", false
}

func (s *AdminService) storeFailure(err error) (any, int) {
	s.logger.Error("record store failure", zap.Error(err))
	return "Internal server error", 500
}
