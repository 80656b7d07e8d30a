package accounts

// UserStatus represents the online/offline state of a user
type UserStatus string

const (
	UserStatusOnline  UserStatus = "ONLINE"
	UserStatusOffline UserStatus = "OFFLINE"
)

// DateLayout is the string format for creation dates and birthdays
const DateLayout = "02.01.2006"

// User represents a registered account with its session state.
// Token is set exactly while Status is UserStatusOnline.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name,omitempty"`
	Username     string     `json:"username"`
	Password     string     `json:"-"`
	CreationDate string     `json:"creation_date"`
	Birthday     *string    `json:"birthday,omitempty"`
	Status       UserStatus `json:"status"`
	Token        *string    `json:"token,omitempty"`
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials represents a login request
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserEdit represents a partial profile edit; nil fields are left unchanged
type UserEdit struct {
	Username *string `json:"username,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
}
