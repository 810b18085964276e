package models

import "time"

// User is a registered account. SecretHash holds a bcrypt hash; the plaintext
// secret is never stored.
type User struct {
	ID         string
	UserName   string
	SecretHash string
	CreatedAt  time.Time
}
