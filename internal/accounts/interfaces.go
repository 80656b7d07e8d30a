package accounts

import "context"

// UserStore defines the interface for user storage operations.
// Find methods return (nil, nil) when no record matches.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByName(ctx context.Context, name string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByToken(ctx context.Context, token string) (*User, error)
	Insert(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) error
	All(ctx context.Context) ([]*User, error)
}

// UserService defines the interface for user service operations
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	LogInUser(ctx context.Context, creds *Credentials) (*User, error)
	LogOutUser(ctx context.Context, token string) (bool, error)
	AuthenticateUser(ctx context.Context, token string) (bool, error)
	GetUsers(ctx context.Context) ([]*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	UpdateUser(ctx context.Context, id int64, edit *UserEdit) error
}
