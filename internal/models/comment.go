package models

import "time"

// Comment is a user's satisfaction note on a software record. The rate is
// constrained to 1..10.
type Comment struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"user_id"`
	Username         string    `json:"user_name"`
	SoftwareID       int64     `json:"software_id"`
	Content          string    `json:"content"`
	SatisfactionRate int       `json:"satisfaction_rate"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

const (
	MinSatisfactionRate = 1
	MaxSatisfactionRate = 10
)
