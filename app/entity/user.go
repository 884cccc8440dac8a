package entity

import "time"

type User struct {
	ID           uint64
	FirstName    string
	LastName     string
	NationalID   string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
