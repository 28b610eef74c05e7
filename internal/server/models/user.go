// Package models holds the persisted domain records of the server.
package models

import "time"

// User is a registered identity. PasswordHash is the PHC-encoded argon2id
// hash; it never leaves the server process (transports serialize ID, Email
// and CreatedAt only) and must never be written to logs.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
