package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchview/internal/domain"
	"github.com/kailas-cloud/searchview/internal/logger"
	"github.com/kailas-cloud/searchview/internal/render"
	healthuc "github.com/kailas-cloud/searchview/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchview/internal/usecase/search"
	"github.com/kailas-cloud/searchview/internal/version"
)

const defaultMaxBodyBytes = 8 << 20

// errorMapping ties a domain sentinel to an HTTP status and API code.
type errorMapping struct {
	sentinel error
	status   int
	code     ErrorResponseCode
}

// Server serves the search page and the JSON API.
type Server struct {
	search       *searchuc.Service
	health       *healthuc.Service
	html         *render.HTMLRenderer
	logger       *zap.Logger
	maxBodyBytes int64
	errorMap     []errorMapping
}

// NewServer creates an HTTP server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	html *render.HTMLRenderer,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:       search,
		health:       health,
		html:         html,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
		errorMap: []errorMapping{
			// ErrRateLimited before ErrBackendRejected: a 429 BackendError unwraps to it.
			{domain.ErrRateLimited, http.StatusTooManyRequests, ErrorResponseCodeRateLimited},
			{domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeValidationFailed},
			{domain.ErrBackendRejected, http.StatusBadGateway, ErrorResponseCodeBackendRejected},
			{domain.ErrBackendUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeBackendUnavailable},
		},
	}
}

// WithMaxBodyBytes limits the size of POST /api/v1/normalize bodies.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Index)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Post("/normalize", s.Normalize)
	})
}

// Index handles GET /. Without q it shows the empty search page.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	data := render.PageData{Form: render.DefaultFormValues()}
	status := http.StatusOK

	if err := s.runPageSearch(r, &data); err != nil {
		var code ErrorResponseCode
		status, code = s.classify(err)
		data.Error = s.publicMessage(r, err, status, code)
	}

	var buf bytes.Buffer
	if err := s.html.RenderPage(&buf, data); err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) runPageSearch(r *http.Request, data *render.PageData) error {
	params, err := bindSearchParams(r)
	if err != nil {
		return err
	}
	data.Form.Query = params.query()
	if data.Form.Query == "" {
		return nil
	}

	req, err := params.toRequest()
	if err != nil {
		return err
	}
	data.Form = render.FormValuesFrom(&req)

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		return err
	}
	data.Page = &page
	return nil
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	req, err := params.toRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Normalize handles POST /api/v1/normalize. The body is a raw search response.
func (s *Server) Normalize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorResponseCodePayloadTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.search.Normalize(r.Context(), body))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// classify maps an error to its HTTP status and API code.
func (s *Server) classify(err error) (int, ErrorResponseCode) {
	for _, m := range s.errorMap {
		if errors.Is(err, m.sentinel) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, ErrorResponseCodeInternalError
}

// publicMessage logs err and returns the text safe to show to clients.
// Validation and backend rejection details are the caller's own input or
// the backend's explanation; everything else is reduced to its sentinel.
func (s *Server) publicMessage(r *http.Request, err error, status int, code ErrorResponseCode) string {
	log := logger.FromContext(r.Context())
	if status == http.StatusInternalServerError {
		log.Error("internal error", zap.Error(err))
		return "internal error"
	}
	log.Warn("domain error", zap.Error(err), zap.String("code", string(code)))

	var be *domain.BackendError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return err.Error()
	case errors.As(err, &be):
		return be.Error()
	default:
		return safeDomainMessage(err)
	}
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrRateLimited,
		domain.ErrBackendRejected,
		domain.ErrBackendUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := s.classify(err)
	writeError(w, status, code, s.publicMessage(r, err, status, code))
}
