package health

import "context"

// BackendChecker checks search backend availability.
type BackendChecker interface {
	HealthCheck(ctx context.Context) error
}
