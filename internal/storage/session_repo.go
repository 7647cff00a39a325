package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tally/internal/model"
)

// SessionRepo reads and writes session rows. The drafts table shares
// the sessions shape, so the repo is parameterized on the table name.
type SessionRepo struct {
	db    *sql.DB
	table string
}

func NewSessionRepo(db *sql.DB, table string) *SessionRepo {
	return &SessionRepo{db: db, table: table}
}

func (r *SessionRepo) Insert(ctx context.Context, id, owner string, s model.StudySession, createdAt time.Time) error {
	notes, err := marshalNotes(s.ThoughtNotes)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			id, owner_id, subject, minutes,
			key_insight, daily_note, flow_log, mode,
			category, category_emoji, category_name, category_color,
			elapsed_formatted, thought_notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.table),
		id, owner, s.Subject, s.Minutes,
		s.KeyInsight, s.DailyNote, s.FlowLog, string(s.Mode),
		s.Category, s.CategoryEmoji, s.CategoryName, s.CategoryColor,
		s.ElapsedFormatted, notes, createdAt)
	if err != nil {
		return fmt.Errorf("%s insert: %w", r.table, err)
	}
	return nil
}

// List returns an owner's rows ordered by creation time. Published
// sessions read newest first; drafts read oldest first so the work
// period keeps its finalization order.
func (r *SessionRepo) List(ctx context.Context, owner string, newestFirst bool) ([]model.StudySession, error) {
	dir := "ASC"
	if newestFirst {
		dir = "DESC"
	}
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, subject, minutes, key_insight, daily_note, flow_log, mode,
			category, category_emoji, category_name, category_color,
			elapsed_formatted, thought_notes, created_at
		FROM %s
		WHERE owner_id = ?
		ORDER BY created_at %s, id %s
	`, r.table, dir, dir), owner)
	if err != nil {
		return nil, fmt.Errorf("%s list: %w", r.table, err)
	}
	defer rows.Close()

	var out []model.StudySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", r.table, err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", r.table, err)
	}
	return out, nil
}

func (r *SessionRepo) Delete(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE owner_id = ? AND id = ?`, r.table), owner, id)
	if err != nil {
		return fmt.Errorf("%s delete: %w", r.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s delete rows affected: %w", r.table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", r.table, id)
	}
	return nil
}

func (r *SessionRepo) DeleteAll(ctx context.Context, owner string) error {
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE owner_id = ?`, r.table), owner); err != nil {
		return fmt.Errorf("%s clear: %w", r.table, err)
	}
	return nil
}

func scanSession(rows *sql.Rows) (*model.StudySession, error) {
	var (
		id        string
		subject   string
		minutes   int
		insight   sql.NullString
		dailyNote sql.NullString
		flowLog   sql.NullString
		mode      string
		cat       sql.NullString
		catEmoji  sql.NullString
		catName   sql.NullString
		catColor  sql.NullString
		elapsed   sql.NullString
		notesRaw  sql.NullString
		createdAt time.Time
	)
	if err := rows.Scan(
		&id, &subject, &minutes, &insight, &dailyNote, &flowLog, &mode,
		&cat, &catEmoji, &catName, &catColor, &elapsed, &notesRaw, &createdAt,
	); err != nil {
		return nil, err
	}
	notes, err := unmarshalNotes(notesRaw)
	if err != nil {
		return nil, err
	}
	return &model.StudySession{
		ID:               id,
		Subject:          subject,
		Minutes:          minutes,
		KeyInsight:       nullToPtr(insight),
		DailyNote:        nullToPtr(dailyNote),
		FlowLog:          nullToPtr(flowLog),
		Mode:             model.Mode(mode),
		Category:         nullToPtr(cat),
		CategoryEmoji:    nullToPtr(catEmoji),
		CategoryName:     nullToPtr(catName),
		CategoryColor:    nullToPtr(catColor),
		ElapsedFormatted: nullToPtr(elapsed),
		ThoughtNotes:     notes,
		CreatedAt:        createdAt,
	}, nil
}
