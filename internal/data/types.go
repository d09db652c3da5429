package data

import (
	"time"
)

// Run is one decoded batch.
type Run struct {
	RunID     int64     `db:"run_id"`
	CreatedAt time.Time `db:"created_at"`
	Source    string    `db:"source"`
	Mode      string    `db:"mode"`
	Bins      int       `db:"bins"`
	Skipped   int       `db:"skipped"`
	Count     int       `db:"count"`
}

// Sample is a decoded token at its position in the input.
type Sample struct {
	Index int
	Token string
	Value float64
}
