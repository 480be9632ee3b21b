package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
)

// Timestamps are stored as unix milliseconds so both backends scan them the
// same way.
var schema = map[string][]string{
	dialect.SQLite: {
		`CREATE TABLE IF NOT EXISTS llm_request_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS derivations (
			id TEXT PRIMARY KEY,
			sequence INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			project_name TEXT NOT NULL DEFAULT '',
			project_type TEXT NOT NULL,
			tier INTEGER NOT NULL,
			filename TEXT NOT NULL,
			skills TEXT NOT NULL,
			enhanced BOOLEAN NOT NULL,
			document TEXT NOT NULL DEFAULT ''
		)`,
	},
	dialect.Postgres: {
		`CREATE TABLE IF NOT EXISTS llm_request_events (
			id BIGSERIAL PRIMARY KEY,
			sequence BIGINT NOT NULL,
			created_at BIGINT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS derivations (
			id TEXT PRIMARY KEY,
			sequence BIGINT NOT NULL,
			created_at BIGINT NOT NULL,
			project_name TEXT NOT NULL DEFAULT '',
			project_type TEXT NOT NULL,
			tier INTEGER NOT NULL,
			filename TEXT NOT NULL,
			skills TEXT NOT NULL,
			enhanced BOOLEAN NOT NULL,
			document TEXT NOT NULL DEFAULT ''
		)`,
	},
}

func migrate(ctx context.Context, db *sql.DB, dialectName string) error {
	stmts, ok := schema[dialectName]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", dialectName)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
