package service

import (
	"context"
	"errors"

	"github.com/yndnr/libros-go/internal/cli/connection"
	"github.com/yndnr/libros-go/internal/core/domain"
)

// Gateway sends JSON requests to the catalog server.
// *connection.HTTPClient implements it.
type Gateway interface {
	Send(ctx context.Context, method, path string, body, target any) error
}

// UnauthorizedHandler is told about every 401 answered by the catalog.
// It reports whether a stored session was cleared.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context) bool
}

// classify turns a gateway error into a ServerError: responses through
// the status classifier, anything else as a transport failure.
func classify(err error) *domain.ServerError {
	var se *domain.ServerError
	if errors.As(err, &se) {
		return se
	}
	var statusErr *connection.StatusError
	if errors.As(err, &statusErr) {
		return domain.Classify(statusErr.StatusCode, statusErr.Body)
	}
	return domain.TransportFailure(err)
}
