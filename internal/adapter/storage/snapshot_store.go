// internal/adapter/storage/snapshot_store.go

package storage

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"trendpulse/internal/domain/trend"
)

// Execer is the subset of a pgx pool the snapshot store needs
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

const createSnapshotsTable = `
	CREATE TABLE IF NOT EXISTS trend_snapshots (
		id           UUID PRIMARY KEY,
		last_updated TIMESTAMPTZ NOT NULL,
		item_count   INTEGER NOT NULL,
		generations  JSONB NOT NULL,
		archived_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// SnapshotStore archives every refreshed trends snapshot in Postgres
type SnapshotStore struct {
	db Execer
}

// NewSnapshotStore creates a new snapshot store
func NewSnapshotStore(db Execer) *SnapshotStore {
	return &SnapshotStore{
		db: db,
	}
}

// Name identifies the store in logs
func (s *SnapshotStore) Name() string {
	return "postgres"
}

// EnsureSchema creates the snapshots table if it does not exist
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("error creating trend_snapshots table: %w", err)
	}
	return nil
}

// Archive saves a snapshot
func (s *SnapshotStore) Archive(ctx context.Context, d trend.Dataset) error {
	query := `
		INSERT INTO trend_snapshots (id, last_updated, item_count, generations)
		VALUES ($1, $2, $3, $4)
	`

	generationsJSON, err := json.Marshal(d.Generations)
	if err != nil {
		return fmt.Errorf("error marshaling generations: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		uuid.New(),
		d.LastUpdated,
		itemCount(d),
		generationsJSON,
	)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

func itemCount(d trend.Dataset) int {
	n := 0
	for _, items := range d.Generations {
		n += len(items)
	}
	return n
}
