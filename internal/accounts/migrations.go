package accounts

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// UserIndexes holds the index definitions for the users table. The unique
// username index is the authoritative uniqueness check for account creation;
// the token index keeps logout and authentication lookups direct.
var UserIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username)`,
	`CREATE INDEX IF NOT EXISTS users_token_idx ON users (token)`,
}

// CreateTables creates all necessary tables for the account service
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*UserSchema)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates all necessary indexes for the account service
func CreateIndexes(ctx context.Context, db *bun.DB) error {
	for _, indexSQL := range UserIndexes {
		_, err := db.ExecContext(ctx, indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create index with SQL %q: %w", indexSQL, err)
		}
	}

	return nil
}
