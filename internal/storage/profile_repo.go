package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tally/internal/model"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, owner string) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT owner_id, nickname, job_goal, experience, level, join_date, updated_at
		FROM profiles
		WHERE owner_id = ?
	`, owner)

	var (
		p        model.Profile
		nickname sql.NullString
		jobGoal  sql.NullString
	)
	if err := row.Scan(&p.OwnerID, &nickname, &jobGoal, &p.Experience, &p.Level, &p.JoinDate, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	p.Nickname = nullToPtr(nickname)
	p.JobGoal = nullToPtr(jobGoal)
	return &p, nil
}

// SetProgress writes the experience/level pair, creating the profile
// row on first write. Other profile fields are preserved (merge
// semantics); the read-check-write runs in one transaction.
func (r *ProfileRepo) SetProgress(ctx context.Context, owner string, p model.UserProgress, now time.Time) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE profiles SET experience = ?, level = ?, updated_at = ? WHERE owner_id = ?
		`, p.Experience, p.Level, now, owner)
		if err != nil {
			return fmt.Errorf("progress update: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("progress rows affected: %w", err)
		}
		if n == 0 {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO profiles (owner_id, experience, level, join_date, updated_at)
				VALUES (?, ?, ?, ?, ?)
			`, owner, p.Experience, p.Level, now, now); err != nil {
				return fmt.Errorf("progress insert: %w", err)
			}
		}
		return nil
	})
}

// UpdateInfo merges nickname/job goal into the profile, creating the
// row if needed. Nil means "leave unchanged".
func (r *ProfileRepo) UpdateInfo(ctx context.Context, owner string, nickname, jobGoal *string, now time.Time) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (owner_id, join_date, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(owner_id) DO NOTHING
		`, owner, now, now); err != nil {
			return fmt.Errorf("profile ensure: %w", err)
		}
		if nickname != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE profiles SET nickname = ?, updated_at = ? WHERE owner_id = ?`, *nickname, now, owner); err != nil {
				return fmt.Errorf("profile nickname: %w", err)
			}
		}
		if jobGoal != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE profiles SET job_goal = ?, updated_at = ? WHERE owner_id = ?`, *jobGoal, now, owner); err != nil {
				return fmt.Errorf("profile job goal: %w", err)
			}
		}
		return nil
	})
}
