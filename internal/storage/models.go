package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Interaction is one handled assistant request.
type Interaction struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Intent      string    `json:"intent"`
	Language    string    `json:"language"`
	UserQuery   string    `json:"user_query"`
	Response    string    `json:"response"`
	Status      string    `json:"status"`
	DurationMs  int64     `json:"duration_ms"`
	ResultCount int       `json:"result_count"`
}
