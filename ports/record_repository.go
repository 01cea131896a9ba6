package ports

import (
	"context"

	"github.com/SylvinIsamaza/lung-cancer/models"
)

// RecordRepository defines the interface for patient record persistence.
// Queries are always scoped to a single recorded_by username; no unscoped
// read path exists.
type RecordRepository interface {
	// Save atomically persists a record with its result and returns the
	// stored row
	Save(ctx context.Context, record *models.PatientRecord) (*models.PatientRecord, error)

	// LatestFor returns the caller's most recent record, newest creation
	// timestamp first with ties broken by insertion order; fails with a
	// not-found error when the user has no records
	LatestFor(ctx context.Context, username string) (*models.PatientRecord, error)

	// CountFor returns how many records the user has stored
	CountFor(ctx context.Context, username string) (int, error)
}
