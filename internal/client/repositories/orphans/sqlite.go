package orphans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/dbx"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Record(ctx context.Context, o models.Orphan) error {
	created := o.CreatedAt
	if created.IsZero() {
		created = r.now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orphans (kind, entity_id, reason, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, entity_id) DO UPDATE SET reason = excluded.reason
	`, string(o.Kind), o.EntityID, o.Reason, created.UTC())
	if err != nil {
		return fmt.Errorf("failed to record orphan %s/%s: %w", o.Kind, o.EntityID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Orphan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, entity_id, reason, created_at FROM orphans ORDER BY created_at, kind, entity_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphans: %w", err)
	}
	defer rows.Close()

	var result []models.Orphan
	for rows.Next() {
		var o models.Orphan
		var kind string
		if err := rows.Scan(&kind, &o.EntityID, &o.Reason, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan orphan row: %w", err)
		}
		o.Kind = models.Kind(kind)
		result = append(result, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orphan rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Resolve(ctx context.Context, kind models.Kind, entityID string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var recorded time.Time
		err := tx.QueryRowContext(ctx,
			`SELECT created_at FROM orphans WHERE kind = ? AND entity_id = ?`,
			string(kind), entityID).Scan(&recorded)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, kind, entityID)
		}
		if err != nil {
			return fmt.Errorf("failed to get orphan %s/%s: %w", kind, entityID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM orphans WHERE kind = ? AND entity_id = ?`, string(kind), entityID); err != nil {
			return fmt.Errorf("failed to delete orphan %s/%s: %w", kind, entityID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO resolved_orphans (kind, entity_id, recorded_at, resolved_at) VALUES (?, ?, ?, ?)`,
			string(kind), entityID, recorded.UTC(), r.now().UTC()); err != nil {
			return fmt.Errorf("failed to archive orphan %s/%s: %w", kind, entityID, err)
		}
		return nil
	})
}

func (r *SQLiteRepository) History(ctx context.Context) ([]models.ResolvedOrphan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, entity_id, recorded_at, resolved_at FROM resolved_orphans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolved orphans: %w", err)
	}
	defer rows.Close()

	var result []models.ResolvedOrphan
	for rows.Next() {
		var o models.ResolvedOrphan
		var kind string
		if err := rows.Scan(&kind, &o.EntityID, &o.RecordedAt, &o.ResolvedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resolved orphan row: %w", err)
		}
		o.Kind = models.Kind(kind)
		result = append(result, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resolved orphan rows: %w", err)
	}

	return result, nil
}
