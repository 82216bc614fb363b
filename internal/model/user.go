package model

import "time"

// Role is the closed set of account roles. Authorization decisions are
// made against these values, never against raw strings from the wire.
type Role string

const (
	RoleUser      Role = "user"
	RoleEditor    Role = "editor"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEditor, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table. The password is kept only as a bcrypt hash; bcrypt embeds its
// own salt so no separate salt column exists.
//
// Fields:
//  ID           – primary key identifier of the user.
//  NickName     – display name shown next to reviews.
//  Email        – unique email address.
//  Role         – account role (user, editor, moderator, admin).
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	NickName     string    // users.nick_name
	Email        string    // users.email
	Role         Role      // users.role
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
