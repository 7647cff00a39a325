package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"tally/internal/model"
)

type ReceiptRepo struct {
	db *sql.DB
}

func NewReceiptRepo(db *sql.DB) *ReceiptRepo {
	return &ReceiptRepo{db: db}
}

func (r *ReceiptRepo) Insert(ctx context.Context, id, owner string, rec model.Receipt, createdAt time.Time) error {
	sessionsJSON, err := marshalJSON(rec.Sessions, "receipt sessions")
	if err != nil {
		return err
	}
	statsJSON, err := marshalJSON(rec.CategoryStats, "category stats")
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO receipts (id, owner_id, sessions, total_formatted, total_minutes, category_stats, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, owner, sessionsJSON, rec.TotalFormatted, rec.TotalMinutes, statsJSON, createdAt)
	if err != nil {
		return fmt.Errorf("receipt insert: %w", err)
	}
	return nil
}

// List returns an owner's receipts, newest first.
func (r *ReceiptRepo) List(ctx context.Context, owner string) ([]model.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sessions, total_formatted, total_minutes, category_stats, created_at
		FROM receipts
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("receipt list: %w", err)
	}
	defer rows.Close()

	var out []model.Receipt
	for rows.Next() {
		var (
			rec          model.Receipt
			sessionsJSON string
			statsJSON    string
		)
		if err := rows.Scan(&rec.ID, &sessionsJSON, &rec.TotalFormatted, &rec.TotalMinutes, &statsJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("receipt scan: %w", err)
		}
		if err := json.Unmarshal([]byte(sessionsJSON), &rec.Sessions); err != nil {
			return nil, fmt.Errorf("unmarshal receipt sessions: %w", err)
		}
		if err := json.Unmarshal([]byte(statsJSON), &rec.CategoryStats); err != nil {
			return nil, fmt.Errorf("unmarshal category stats: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("receipt rows: %w", err)
	}
	return out, nil
}
