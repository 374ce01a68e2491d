package domain

import "time"

// User is the credential record the store owns. The core only ever reads it;
// nothing in the token lifecycle mutates a user.
type User struct {
	Username     string // unique key
	Email        string
	PasswordHash string // bcrypt encoded
	CreatedAt    time.Time
}
