package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router uses the standard library http.ServeMux (no third-party
// routing dependency). Every request gets a request_id for the access
// log.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	r.mux.ServeHTTP(rec, req)
	r.logger.Info("http request",
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)),
	)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RegisterAPIRoutes wires the heart-rate surveillance endpoints.
func (r *Router) RegisterAPIRoutes(h *Handler) {
	r.Handle("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Root(w, req)
	})

	r.Handle("/api/new_attending", post(h.NewAttending))
	r.Handle("/api/new_patient", post(h.NewPatient))
	r.Handle("/api/heart_rate", post(h.HeartRate))
	r.Handle("/api/heart_rate/interval_average", post(h.IntervalAverage))
	r.Handle("/api/new_administrator", post(h.NewAdministrator))

	r.Handle("/api/status/", getWithParam("/api/status/", h.Status))
	r.Handle("/api/heart_rate/average/", getWithParam("/api/heart_rate/average/", h.HeartRateAverage))
	// registered after /api/heart_rate/average/ and
	// /api/heart_rate/interval_average; ServeMux picks the longest
	// pattern so those stay reachable
	r.Handle("/api/heart_rate/", getWithParam("/api/heart_rate/", h.HeartRateList))
	r.Handle("/api/patients/", getWithParam("/api/patients/", h.PatientsByAttending))

	r.Handle("/api/admin/all_attendings", post(h.AdminAllAttendings))
	r.Handle("/api/admin/all_patients", post(h.AdminAllPatients))
	r.Handle("/api/admin/all_tachycardia", post(h.AdminAllTachycardia))
	r.Handle("/api/admin/export_patients", post(h.AdminExportPatients))
}

func post(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

func getWithParam(prefix string, h func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		param := strings.TrimPrefix(req.URL.Path, prefix)
		if param == "" || strings.Contains(param, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, req, param)
	}
}
