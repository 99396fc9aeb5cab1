package domain

import (
	"strings"
	"time"
)

// UserId is an opaque identifier (uuid string) assigned at sign-up.
type UserId = string

type User struct {
	Id        UserId
	Email     string
	Nickname  string
	PassHash  string
	CreatedAt time.Time
}

// DisplayName returns the nickname chosen at sign-up, falling back to the
// local part of the email address. Empty for a zero-value user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Nickname != "" {
		return u.Nickname
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

type Credentials struct {
	Email    string
	Password string
	Nickname string
}
