package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
	"github.com/SylvinIsamaza/lung-cancer/models"
	"github.com/SylvinIsamaza/lung-cancer/ports"
)

const recordColumns = `
	id, age, gender, smoking, finger_discoloration, mental_stress,
	exposure_to_pollution, long_term_illness, energy_level, immune_weakness,
	breathing_issue, alcohol_consumption, throat_discomfort, oxygen_saturation,
	chest_tightness, family_history, smoking_family_history, stress_immune,
	recorded_by, recorded_date, created_at, result`

// RecordRepositoryImpl implements RecordRepository for PostgreSQL
type RecordRepositoryImpl struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new PostgreSQL patient record repository
func NewRecordRepository(db *sqlx.DB) ports.RecordRepository {
	return &RecordRepositoryImpl{db: db}
}

// Save persists the record inside a transaction so the row with its result
// lands fully or not at all.
func (r *RecordRepositoryImpl) Save(ctx context.Context, record *models.PatientRecord) (*models.PatientRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO patient_records (
			id, age, gender, smoking, finger_discoloration, mental_stress,
			exposure_to_pollution, long_term_illness, energy_level, immune_weakness,
			breathing_issue, alcohol_consumption, throat_discomfort, oxygen_saturation,
			chest_tightness, family_history, smoking_family_history, stress_immune,
			recorded_by, recorded_date, created_at, result
		) VALUES (
			:id, :age, :gender, :smoking, :finger_discoloration, :mental_stress,
			:exposure_to_pollution, :long_term_illness, :energy_level, :immune_weakness,
			:breathing_issue, :alcohol_consumption, :throat_discomfort, :oxygen_saturation,
			:chest_tightness, :family_history, :smoking_family_history, :stress_immune,
			:recorded_by, :recorded_date, :created_at, :result
		)
	`, record)
	if err != nil {
		return nil, errors.DatabaseError("failed to save patient record", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.DatabaseError("failed to commit patient record", err)
	}

	return record, nil
}

// LatestFor returns the newest record for a user. The seq column breaks
// created_at ties in insertion order.
func (r *RecordRepositoryImpl) LatestFor(ctx context.Context, username string) (*models.PatientRecord, error) {
	var record models.PatientRecord
	err := r.db.GetContext(ctx, &record, `
		SELECT `+recordColumns+`
		FROM patient_records
		WHERE recorded_by = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT 1
	`, username)

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("prediction")
		}
		return nil, errors.DatabaseError("failed to load latest record", err)
	}

	return &record, nil
}

// CountFor returns the number of records attributed to a user
func (r *RecordRepositoryImpl) CountFor(ctx context.Context, username string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM patient_records WHERE recorded_by = $1
	`, username)
	if err != nil {
		return 0, errors.DatabaseError("failed to count records", err)
	}
	return count, nil
}
