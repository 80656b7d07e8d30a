package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountService implements the UserService interface
type AccountService struct {
	store UserStore
}

// NewAccountService creates a new account service instance
func NewAccountService(store UserStore) *AccountService {
	return &AccountService{
		store: store,
	}
}

// CreateUser creates a new account. The username must be unique across all
// stored records; the store's unique constraint is the authoritative check, so
// two concurrent creates with the same username cannot both succeed. A clash
// on display name alone is tolerated. New accounts start offline with no
// session token.
func (s *AccountService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	user := &User{
		Name:         req.Name,
		Username:     req.Username,
		Password:     req.Password,
		CreationDate: time.Now().Format(DateLayout),
		Status:       UserStatusOffline,
	}

	return s.store.Insert(ctx, user)
}

// LogInUser verifies the supplied credentials and, on success, issues a fresh
// session token and marks the account online. Unknown usernames and wrong
// passwords fail with the same unauthorized error.
func (s *AccountService) LogInUser(ctx context.Context, creds *Credentials) (*User, error) {
	user, err := s.store.FindByUsername(ctx, creds.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != creds.Password {
		return nil, NewUnauthorizedError()
	}

	token := uuid.New().String()
	user.Token = &token
	user.Status = UserStatusOnline

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LogOutUser clears the session matching the given token and marks the
// account offline. Logging out a token no record holds is a no-op that still
// reports success, so the operation is idempotent.
func (s *AccountService) LogOutUser(ctx context.Context, token string) (bool, error) {
	user, err := s.store.FindByToken(ctx, token)
	if err != nil {
		return false, err
	}
	if user == nil {
		return true, nil
	}

	user.Token = nil
	user.Status = UserStatusOffline

	if err := s.store.Update(ctx, user); err != nil {
		return false, err
	}

	return true, nil
}

// AuthenticateUser reports whether some stored record currently holds exactly
// this token. No state is mutated.
func (s *AccountService) AuthenticateUser(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	user, err := s.store.FindByToken(ctx, token)
	if err != nil {
		return false, err
	}

	return user != nil, nil
}

// GetUsers returns all stored accounts
func (s *AccountService) GetUsers(ctx context.Context) ([]*User, error) {
	return s.store.All(ctx)
}

// GetUserByID returns the account with the given identifier
func (s *AccountService) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewNotFoundError(id)
	}

	return user, nil
}

// UpdateUser applies a partial profile edit. Only the fields present in the
// edit change; status and token are never touched here.
func (s *AccountService) UpdateUser(ctx context.Context, id int64, edit *UserEdit) error {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return NewNotFoundError(id)
	}

	if edit.Username != nil {
		user.Username = *edit.Username
	}
	if edit.Birthday != nil {
		user.Birthday = edit.Birthday
	}

	return s.store.Update(ctx, user)
}
