// Package postgres persists scan state in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/agrovision/crop-disease-api/internal/core/domain"
)

type ScanRepository struct {
	db *sql.DB
}

func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ScanRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS scans (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	status TEXT NOT NULL,
	disease_name TEXT,
	confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	treatment_suggestion TEXT,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scans_status ON scans(status);
CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ScanRepository) Create(ctx context.Context, scan *domain.Scan) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO scans (
	id, filename, mime_type, storage_path, status, disease_name, confidence_score, treatment_suggestion, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		scan.ID, scan.Filename, scan.MimeType, scan.StoragePath, string(scan.Status),
		scan.DiseaseName, scan.ConfidenceScore, scan.TreatmentSuggestion, scan.Error,
		scan.CreatedAt, scan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

func (r *ScanRepository) GetByID(ctx context.Context, id string) (*domain.Scan, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, status, disease_name, confidence_score, treatment_suggestion, error_message, created_at, updated_at
FROM scans
WHERE id = $1
`, id)

	var scan domain.Scan
	var status string

	err := row.Scan(
		&scan.ID, &scan.Filename, &scan.MimeType, &scan.StoragePath, &status,
		&scan.DiseaseName, &scan.ConfidenceScore, &scan.TreatmentSuggestion, &scan.Error,
		&scan.CreatedAt, &scan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrScanNotFound, "get scan", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}

	scan.Status = domain.ScanStatus(status)
	return &scan, nil
}

func (r *ScanRepository) UpdateStatus(ctx context.Context, id string, status domain.ScanStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE scans
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update scan status: %w", err)
	}
	return checkAffected(res, id)
}

func (r *ScanRepository) SaveResult(ctx context.Context, id string, result domain.PredictionResult) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE scans
SET disease_name = $2, confidence_score = $3, treatment_suggestion = $4, updated_at = $5
WHERE id = $1
`, id, result.DiseaseName, result.ConfidenceScore, result.TreatmentSuggestion, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save prediction: %w", err)
	}
	return checkAffected(res, id)
}

func checkAffected(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrScanNotFound, "update scan", fmt.Errorf("id %s", id))
	}
	return nil
}
