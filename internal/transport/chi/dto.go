package chi

// ErrorResponseCode is the machine-readable error code of an API error.
type ErrorResponseCode string

// API error codes.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed   ErrorResponseCode = "validation_failed"
	ErrorResponseCodePayloadTooLarge    ErrorResponseCode = "payload_too_large"
	ErrorResponseCodeBackendRejected    ErrorResponseCode = "backend_rejected"
	ErrorResponseCodeBackendUnavailable ErrorResponseCode = "backend_unavailable"
	ErrorResponseCodeRateLimited        ErrorResponseCode = "rate_limited"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// searchParams are the query parameters of GET / and GET /api/v1/search.
type searchParams struct {
	Q                     *string `form:"q"`
	PageSize              *int    `form:"page_size"`
	SummaryResultCount    *int    `form:"summary_result_count"`
	IncludeCitations      *bool   `form:"include_citations"`
	ReturnSnippet         *bool   `form:"return_snippet"`
	MaxExtractiveAnswers  *int    `form:"max_extractive_answers"`
	MaxExtractiveSegments *int    `form:"max_extractive_segments"`
}
