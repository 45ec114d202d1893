package sqlite

import (
	"context"
	"database/sql"

	"github.com/fardannozami/accountability-tracker/internal/domain"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) UpsertMember(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (user_id, name)
		VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name
	`
	_, err := r.db.ExecContext(ctx, query, member.UserID, member.Name)
	return err
}

func (r *MemberRepository) GetAllMembers(ctx context.Context) ([]*domain.Member, error) {
	query := `SELECT user_id, name FROM members ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.UserID, &m.Name); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

// ResolveLIDToPhone maps a WhatsApp linked-device id to the phone number
// whatsmeow recorded for it, so members are keyed by phone. Unknown ids are
// returned unchanged.
func (r *MemberRepository) ResolveLIDToPhone(ctx context.Context, lid string) string {
	var pn string
	err := r.db.QueryRowContext(ctx, `SELECT pn FROM whatsmeow_lid_map WHERE lid = ?`, lid).Scan(&pn)
	if err != nil || pn == "" {
		return lid
	}
	return pn
}

func (r *MemberRepository) InitTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS members (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT ''
		);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}
