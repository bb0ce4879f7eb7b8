package domain

import "time"

// User is a recruiter account. Users own job postings.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
