package accounts

import (
	"context"
	"sync"
)

// InMemoryStore implements the UserStore interface with an in-process map.
// It backs the test suite and local runs without PostgreSQL. The mutex spans
// the whole check-and-insert, giving the same uniqueness guarantee as the
// SQL unique constraint.
type InMemoryStore struct {
	mu     sync.Mutex
	users  map[int64]*User
	nextID int64
}

// NewInMemoryStore creates an empty in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:  make(map[int64]*User),
		nextID: 1,
	}
}

// Insert persists a new user and assigns the next identifier. Identifiers are
// never reused. A duplicate username fails with the conflict error.
func (s *InMemoryStore) Insert(ctx context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, NewConflictError()
		}
	}

	stored := copyUser(user)
	stored.ID = s.nextID
	s.nextID++
	s.users[stored.ID] = stored

	return copyUser(stored), nil
}

// Update replaces the stored record with the same identifier
func (s *InMemoryStore) Update(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return NewNotFoundError(user.ID)
	}

	for id, existing := range s.users {
		if id != user.ID && existing.Username == user.Username {
			return NewConflictError()
		}
	}

	s.users[user.ID] = copyUser(user)
	return nil
}

// FindByUsername retrieves a user by username, or nil when absent
func (s *InMemoryStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.findOne(func(u *User) bool { return u.Username == username })
}

// FindByName retrieves a user by display name, or nil when absent
func (s *InMemoryStore) FindByName(ctx context.Context, name string) (*User, error) {
	return s.findOne(func(u *User) bool { return u.Name == name })
}

// FindByID retrieves a user by identifier, or nil when absent
func (s *InMemoryStore) FindByID(ctx context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(user), nil
}

// FindByToken retrieves the user currently holding the given session token,
// or nil when no record holds it
func (s *InMemoryStore) FindByToken(ctx context.Context, token string) (*User, error) {
	return s.findOne(func(u *User) bool { return u.Token != nil && *u.Token == token })
}

// All returns all stored users ordered by identifier
func (s *InMemoryStore) All(ctx context.Context) ([]*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*User, 0, len(s.users))
	for id := int64(1); id < s.nextID; id++ {
		if user, ok := s.users[id]; ok {
			users = append(users, copyUser(user))
		}
	}
	return users, nil
}

func (s *InMemoryStore) findOne(match func(*User) bool) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if match(user) {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

// copyUser returns a deep copy so callers never alias stored records
func copyUser(user *User) *User {
	clone := *user
	if user.Birthday != nil {
		birthday := *user.Birthday
		clone.Birthday = &birthday
	}
	if user.Token != nil {
		token := *user.Token
		clone.Token = &token
	}
	return &clone
}
