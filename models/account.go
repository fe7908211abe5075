package models

import "time"

// Role is the authorization role assigned to an account.
type Role string

const (
	// RoleUser is the default role for self-registered accounts.
	RoleUser Role = "user"

	// RoleAdmin grants access to account management and unrestricted
	// post deletion.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the recognised roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account represents a board account used for authentication and
// authorization. PasswordHash must only ever hold a bcrypt hash, never a
// plaintext password.
type Account struct {
	// AccountID is the server-assigned unique identifier.
	AccountID int64 `json:"id"`

	// Username is the unique login identifier. Immutable after creation.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// Role controls what the account is allowed to do.
	Role Role `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// Identity returns the session snapshot for the account as it is right now.
func (a Account) Identity() Identity {
	return Identity{
		AccountID: a.AccountID,
		Username:  a.Username,
		Role:      a.Role,
	}
}

// Identity is the authenticated actor's snapshot carried for the duration
// of one session. It is captured at login time and is not refreshed until
// re-login, so role changes made while a session is live do not affect it.
type Identity struct {
	AccountID int64  `json:"id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
}

// IsAdmin reports whether the identity snapshot carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
