package domain

import "time"

// User is an account holder. A wallet is created alongside the user at
// registration and never deleted.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
