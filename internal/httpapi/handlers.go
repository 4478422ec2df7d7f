package httpapi

import (
	"net/http"

	"hrss-server/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler carries the service layer into the route handlers.
type Handler struct {
	registration *service.RegistrationService
	vitals       *service.VitalsService
	admin        *service.AdminService
	logger       *zap.Logger
}

func NewHandler(registration *service.RegistrationService, vitals *service.VitalsService, admin *service.AdminService, logger *zap.Logger) *Handler {
	return &Handler{
		registration: registration,
		vitals:       vitals,
		admin:        admin,
		logger:       logger,
	}
}

// Root answers the health probe.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, "The heart rate surveillance server is up and running.")
}

func (h *Handler) NewAttending(w http.ResponseWriter, r *http.Request) {
	body, status := h.registration.NewAttending(r.Context(), readBodyJSON(r, maxBodyBytes))
	writeJSON(w, status, body)
}

func (h *Handler) NewPatient(w http.ResponseWriter, r *http.Request) {
	body, status := h.registration.NewPatient(r.Context(), readBodyJSON(r, maxBodyBytes))
	writeJSON(w, status, body)
}

func (h *Handler) HeartRate(w http.ResponseWriter, r *http.Request) {
	body, status := h.vitals.AddHeartRate(r.Context(), readBodyJSON(r, maxBodyBytes))
	writeJSON(w, status, body)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request, patientID string) {
	body, status := h.vitals.Status(r.Context(), patientID)
	writeJSON(w, status, body)
}

func (h *Handler) HeartRateList(w http.ResponseWriter, r *http.Request, patientID string) {
	body, status := h.vitals.HeartRateList(r.Context(), patientID)
	writeJSON(w, status, body)
}

func (h *Handler) HeartRateAverage(w http.ResponseWriter, r *http.Request, patientID string) {
	body, status := h.vitals.HeartRateAverage(r.Context(), patientID)
	writeJSON(w, status, body)
}

func (h *Handler) IntervalAverage(w http.ResponseWriter, r *http.Request) {
	body, status := h.vitals.IntervalAverage(r.Context(), readBodyJSON(r, maxBodyBytes))
	writeJSON(w, status, body)
}

func (h *Handler) PatientsByAttending(w http.ResponseWriter, r *http.Request, username string) {
	body, status := h.vitals.PatientsByAttending(r.Context(), username)
	writeJSON(w, status, body)
}

func (h *Handler) NewAdministrator(w http.ResponseWriter, r *http.Request) {
	body, status := h.admin.NewAdministrator(r.Context(), readBodyJSON(r, maxBodyBytes))
	writeJSON(w, status, body)
}

func (h *Handler) AdminAllAttendings(w http.ResponseWriter, r *http.Request) {
	body, status := h.admin.AllAttendings(r.Context(), readBodyJSON(r, maxBodyBytes))
	writeJSON(w, status, body)
}

func (h *Handler) AdminAllPatients(w http.ResponseWriter, r *http.Request) {
	body, status := h.admin.AllPatients(r.Context(), readBodyJSON(r, maxBodyBytes))
	writeJSON(w, status, body)
}

func (h *Handler) AdminAllTachycardia(w http.ResponseWriter, r *http.Request) {
	body, status := h.admin.AllTachycardia(r.Context(), readBodyJSON(r, maxBodyBytes))
	writeJSON(w, status, body)
}

func (h *Handler) AdminExportPatients(w http.ResponseWriter, r *http.Request) {
	data, body, status := h.admin.ExportPatients(r.Context(), readBodyJSON(r, maxBodyBytes))
	if body != nil {
		writeJSON(w, status, body)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="patients.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
