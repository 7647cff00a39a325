package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tally/internal/model"
)

type FeedRepo struct {
	db *sql.DB
}

func NewFeedRepo(db *sql.DB) *FeedRepo {
	return &FeedRepo{db: db}
}

func (r *FeedRepo) Insert(ctx context.Context, id string, item model.FeedItem, createdAt time.Time) error {
	label := item.AuthorLabel
	if label == "" {
		label = "anon"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO square_feed (id, subject, minutes, author_label, reactions, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, id, item.Subject, item.Minutes, label, createdAt)
	if err != nil {
		return fmt.Errorf("feed insert: %w", err)
	}
	return nil
}

// List returns the newest feed entries, most recent first.
func (r *FeedRepo) List(ctx context.Context, limit int) ([]model.FeedItem, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subject, minutes, author_label, reactions, created_at
		FROM square_feed
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("feed list: %w", err)
	}
	defer rows.Close()

	var out []model.FeedItem
	for rows.Next() {
		var item model.FeedItem
		if err := rows.Scan(&item.ID, &item.Subject, &item.Minutes, &item.AuthorLabel, &item.Reactions, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("feed scan: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feed rows: %w", err)
	}
	return out, nil
}

// Cheer increments an entry's reaction counter.
func (r *FeedRepo) Cheer(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE square_feed SET reactions = reactions + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("feed cheer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("feed cheer rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("feed item %s not found", id)
	}
	return nil
}
