package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			owner_id TEXT PRIMARY KEY,
			nickname TEXT,
			job_goal TEXT,
			experience INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			join_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			subject TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			key_insight TEXT,
			daily_note TEXT,
			flow_log TEXT,
			mode TEXT NOT NULL DEFAULT 'flow',
			category TEXT,
			category_emoji TEXT,
			category_name TEXT,
			category_color TEXT,
			elapsed_formatted TEXT,
			thought_notes TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		// Same shape as sessions: the durable mirror of the current
		// work period, cleared by publish or an explicit reset.
		`CREATE TABLE IF NOT EXISTS drafts (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			subject TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			key_insight TEXT,
			daily_note TEXT,
			flow_log TEXT,
			mode TEXT NOT NULL DEFAULT 'flow',
			category TEXT,
			category_emoji TEXT,
			category_name TEXT,
			category_color TEXT,
			elapsed_formatted TEXT,
			thought_notes TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS receipts (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			sessions TEXT NOT NULL,
			total_formatted TEXT NOT NULL,
			total_minutes INTEGER NOT NULL,
			category_stats TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS square_feed (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			author_label TEXT NOT NULL DEFAULT 'anon',
			reactions INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_owner_created ON sessions(owner_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_owner_created ON drafts(owner_id, created_at ASC);`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_owner_created ON receipts(owner_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_square_feed_created ON square_feed(created_at DESC);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
