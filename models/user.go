package models

import "time"

// User is a tracker account. Work items, comments and notifications refer
// to it by UserID.
type User struct {
	UserID int64  `json:"id"`
	Login  string `json:"login"`
	Name   string `json:"name"`

	// Password only travels in register and login requests.
	Password string `json:"password,omitempty"`

	// PasswordHash is the stored bcrypt hash and never leaves the server.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Actor returns the identity used when the user performs an action.
func (u User) Actor() Actor {
	return Actor{UserID: u.UserID, Login: u.Login}
}

// Actor is the authenticated identity a request is performed on behalf of.
// It is stamped into created_by and updated_by columns.
type Actor struct {
	UserID int64
	Login  string
}
