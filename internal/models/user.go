package models

import "time"

// User represents a registered user account.
// Every group member is a user; the member list of a group references user IDs.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique).
	// Used for login and for adding the user to groups.
	Email string

	// DisplayName is shown in group breakdowns and settlement options.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser builds a user with fresh timestamps. The ID is assigned by the store.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AsMember returns the group-facing view of the user.
func (u *User) AsMember() Member {
	return Member{ID: u.ID, Name: u.DisplayName, Email: u.Email}
}
