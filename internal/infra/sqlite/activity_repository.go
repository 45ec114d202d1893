package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/fardannozami/accountability-tracker/internal/domain"
)

// ActivityRepository stores commitments and phone calls in separate tables,
// one row per user and calendar date. Dates are kept as YYYY-MM-DD text so
// that range filters compare calendar order.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) FetchActivity(ctx context.Context, userID string, kind domain.ActivityKind, rng *domain.DateRange) ([]domain.ActivityRecord, error) {
	var query string
	switch kind {
	case domain.KindCommitment:
		query = `SELECT user_id, commitment_date, status, commitment_text, 0, 0, '' FROM daily_commitments WHERE user_id = ?`
	case domain.KindPhoneCall:
		query = `SELECT user_id, call_date, '', '', target_calls, actual_calls, notes FROM phone_calls WHERE user_id = ?`
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	dateColumn := dateColumnFor(kind)
	args := []any{userID}
	if rng != nil {
		query += ` AND ` + dateColumn + ` >= ? AND ` + dateColumn + ` <= ?`
		args = append(args, rng.From.String(), rng.To.String())
	}
	query += ` ORDER BY ` + dateColumn + ` DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		rec := domain.ActivityRecord{Kind: kind}
		var date string
		if err := rows.Scan(&rec.UserID, &date, &rec.Status, &rec.Text, &rec.TargetCalls, &rec.ActualCalls, &rec.Notes); err != nil {
			return nil, err
		}
		rec.Date, err = civil.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse %s date %q: %w", kind, date, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ActivityRepository) UpsertActivity(ctx context.Context, record *domain.ActivityRecord) error {
	switch record.Kind {
	case domain.KindCommitment:
		query := `
			INSERT INTO daily_commitments (user_id, commitment_date, status, commitment_text, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(user_id, commitment_date) DO UPDATE SET
				status = excluded.status,
				commitment_text = excluded.commitment_text,
				updated_at = excluded.updated_at
		`
		_, err := r.db.ExecContext(ctx, query, record.UserID, record.Date.String(), record.Status, record.Text)
		return err
	case domain.KindPhoneCall:
		query := `
			INSERT INTO phone_calls (user_id, call_date, target_calls, actual_calls, notes, updated_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(user_id, call_date) DO UPDATE SET
				target_calls = excluded.target_calls,
				actual_calls = excluded.actual_calls,
				notes = excluded.notes,
				updated_at = excluded.updated_at
		`
		_, err := r.db.ExecContext(ctx, query, record.UserID, record.Date.String(), record.TargetCalls, record.ActualCalls, record.Notes)
		return err
	}
	return fmt.Errorf("%w: %q", domain.ErrInvalidKind, record.Kind)
}

func (r *ActivityRepository) InitTable(ctx context.Context) error {
	queries := []string{`
		CREATE TABLE IF NOT EXISTS daily_commitments (
			user_id TEXT NOT NULL,
			commitment_date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			commitment_text TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, commitment_date)
		)`, `
		CREATE TABLE IF NOT EXISTS phone_calls (
			user_id TEXT NOT NULL,
			call_date TEXT NOT NULL,
			target_calls INTEGER NOT NULL DEFAULT 0,
			actual_calls INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, call_date)
		)`,
	}
	for _, query := range queries {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func dateColumnFor(kind domain.ActivityKind) string {
	if kind == domain.KindPhoneCall {
		return "call_date"
	}
	return "commitment_date"
}
