package search

import (
	"context"

	"github.com/kailas-cloud/searchview/internal/domain/search/request"
)

// Backend runs one search call and returns the raw response payload.
type Backend interface {
	Search(ctx context.Context, req *request.Request) ([]byte, error)
}
