package models

import "time"

type Vehicle struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	Make        string    `db:"make" json:"make"`
	Model       string    `db:"model" json:"model"`
	Year        int       `db:"year" json:"year"`
	DailyRate   int64     `db:"daily_rate" json:"daily_rate"` // minor currency units
	Location    string    `db:"location" json:"location"`
	Description string    `db:"description" json:"description"`
	Available   bool      `db:"available" json:"available"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
