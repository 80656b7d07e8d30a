package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64   `bun:"id,pk,autoincrement" json:"id"`
	Name         string  `bun:"name" json:"name,omitempty"`
	Username     string  `bun:"username,notnull,unique" json:"username"`
	Password     string  `bun:"password,notnull" json:"-"`
	CreationDate string  `bun:"creation_date,notnull" json:"creation_date"`
	Birthday     *string `bun:"birthday,nullzero" json:"birthday,omitempty"`
	Status       string  `bun:"status,notnull" json:"status"`
	Token        *string `bun:"token,nullzero" json:"token,omitempty"`
}

// PostgresStore implements the UserStore interface with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// Insert persists a new user and assigns its identifier. A duplicate username
// surfaces as the conflict error via the unique constraint, which also closes
// the race between two concurrent creates.
func (s *PostgresStore) Insert(ctx context.Context, user *User) (*User, error) {
	schema := userToSchema(user)

	_, err := s.db.NewInsert().
		Model(&schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isDuplicateUsername(err) {
			return nil, NewConflictError()
		}
		return nil, NewInternalError("failed to insert user", err)
	}

	return schemaToUser(schema), nil
}

// Update persists the full record of an existing user
func (s *PostgresStore) Update(ctx context.Context, user *User) error {
	schema := userToSchema(user)

	result, err := s.db.NewUpdate().
		Model(&schema).
		WherePK().
		Exec(ctx)
	if err != nil {
		if isDuplicateUsername(err) {
			return NewConflictError()
		}
		return NewInternalError("failed to update user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return NewNotFoundError(user.ID)
	}

	return nil
}

// FindByUsername retrieves a user by username, or nil when absent
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.findOne(ctx, "username = ?", username)
}

// FindByName retrieves a user by display name, or nil when absent
func (s *PostgresStore) FindByName(ctx context.Context, name string) (*User, error) {
	return s.findOne(ctx, "name = ?", name)
}

// FindByID retrieves a user by identifier, or nil when absent
func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.findOne(ctx, "id = ?", id)
}

// FindByToken retrieves the user currently holding the given session token,
// or nil when no record holds it
func (s *PostgresStore) FindByToken(ctx context.Context, token string) (*User, error) {
	return s.findOne(ctx, "token = ?", token)
}

// All returns all stored users ordered by identifier
func (s *PostgresStore) All(ctx context.Context) ([]*User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list users", err)
	}

	users := make([]*User, len(schemas))
	for i, schema := range schemas {
		users[i] = schemaToUser(schema)
	}

	return users, nil
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg interface{}) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where(where, arg).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, NewInternalError(fmt.Sprintf("failed to find user by %q", where), err)
	}

	return schemaToUser(schema), nil
}

func isDuplicateUsername(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "users_username_key")
}

// Helper conversion functions

func schemaToUser(schema UserSchema) *User {
	return &User{
		ID:           schema.ID,
		Name:         schema.Name,
		Username:     schema.Username,
		Password:     schema.Password,
		CreationDate: schema.CreationDate,
		Birthday:     schema.Birthday,
		Status:       UserStatus(schema.Status),
		Token:        schema.Token,
	}
}

func userToSchema(user *User) UserSchema {
	return UserSchema{
		ID:           user.ID,
		Name:         user.Name,
		Username:     user.Username,
		Password:     user.Password,
		CreationDate: user.CreationDate,
		Birthday:     user.Birthday,
		Status:       string(user.Status),
		Token:        user.Token,
	}
}
