// internal/domain/trend/source.go

package trend

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by a Source whose upstream credentials or
// location are missing
var ErrNotConfigured = errors.New("trend source not configured")

// Source defines the upstream that trend data and access keys are read from
type Source interface {
	// FetchTrends returns a full snapshot. Failures are reported through the
	// dataset's error flag rather than an error value.
	FetchTrends(ctx context.Context) Dataset

	// FetchAPIKeys returns the keys of all active access-key rows
	FetchAPIKeys(ctx context.Context) ([]string, error)
}

// Archiver receives every dataset that replaces the cached snapshot
type Archiver interface {
	// Name identifies the archiver in logs
	Name() string

	// Archive records a freshly cached dataset
	Archive(ctx context.Context, d Dataset) error
}
