// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an identity record. The password digest never leaves the server.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
