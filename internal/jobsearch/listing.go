// Package jobsearch queries the job-listing provider through an ordered
// waterfall of search strategies and normalizes the listings it returns.
package jobsearch

import (
	"context"
	"errors"
	"time"
)

// ErrMissingCredentials is returned by a provider without API credentials.
var ErrMissingCredentials = errors.New("job provider credentials are not configured")

// Source tags.
const (
	SourceAdzuna    = "adzuna"
	SourceSynthetic = "demo"
)

// JobListing is one normalized provider result.
type JobListing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Salary      string `json:"salary,omitempty"`
	Remote      bool   `json:"remote"`
	PostedDate  string `json:"postedDate,omitempty"`
	Source      string `json:"source"`

	// Posted is the provider's creation time. PostedDate is derived from
	// it relative to the time of the search.
	Posted time.Time `json:"-"`
}

// Query is a single provider request.
type Query struct {
	What    string
	Where   string
	Country string
}

// Provider is a job-listing backend.
type Provider interface {
	Search(ctx context.Context, q Query) ([]JobListing, error)
}
