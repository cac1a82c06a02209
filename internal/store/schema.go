package store

import (
	"context"
	"fmt"
)

// schemaStatements drops and recreates the three collections. Seeding is a
// full reload, matching the one-shot loader this replaces.
var schemaStatements = []string{
	`DROP TABLE IF EXISTS events`,
	`DROP TABLE IF EXISTS activities`,
	`DROP TABLE IF EXISTS people`,
	`CREATE TABLE people (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		gender TEXT NOT NULL DEFAULT '',
		birth_date DATE
	)`,
	`CREATE TABLE activities (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL DEFAULT '',
		indoor BOOLEAN NOT NULL DEFAULT FALSE,
		outdoor BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE events (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		activity_name TEXT NOT NULL DEFAULT '',
		date_time TIMESTAMPTZ,
		people TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX events_activity_name_fts
		ON events USING GIN (to_tsvector('simple', activity_name))`,
}

// CreateSchema drops any existing collections and recreates them.
func (p *Postgres) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
