package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/models"
)

// AuditRepository persists operator audit entries
type AuditRepository struct {
	db *PostgresDB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *PostgresDB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record inserts entry, assigning an id and timestamp when unset
func (r *AuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO console_audit_log
			(id, request_id, operator, method, path, status, duration_ms, remote_addr, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		entry.ID,
		entry.RequestID,
		entry.Operator,
		entry.Method,
		entry.Path,
		entry.Status,
		entry.Duration.Milliseconds(),
		entry.RemoteAddr,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewDatabaseError("record audit entry", err)
	}

	return nil
}

// Recent returns the newest entries, optionally limited to one operator
func (r *AuditRepository) Recent(ctx context.Context, operator string, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, request_id, operator, method, path, status, duration_ms, remote_addr, created_at
		FROM console_audit_log
		WHERE ($1 = '' OR operator = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool().Query(ctx, query, operator, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("query audit log", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.AuditEntry, error) {
		var (
			e          models.AuditEntry
			durationMs int64
		)
		if err := row.Scan(
			&e.ID,
			&e.RequestID,
			&e.Operator,
			&e.Method,
			&e.Path,
			&e.Status,
			&durationMs,
			&e.RemoteAddr,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		return &e, nil
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("scan audit log", err)
	}

	return entries, nil
}
