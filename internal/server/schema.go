package server

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS filter_profiles (
        name       TEXT PRIMARY KEY,
        config     TEXT NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`,
}

// InitSchema creates the profile table if needed. Statements are idempotent
// so repeated startups are safe.
func (s *AppServer) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
