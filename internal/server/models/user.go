// Package models holds the server-side rows: users, refresh tokens and log
// records.
package models

import "time"

type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
