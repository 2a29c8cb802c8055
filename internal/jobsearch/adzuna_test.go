package jobsearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adzunaBody = `{
  "count": 2,
  "results": [
    {
      "id": "4711",
      "title": "Senior <strong>Software</strong> Engineer",
      "description": "Build services in Go and React. Remote friendly &amp; flexible.",
      "company": {"display_name": "Acme"},
      "location": {"display_name": "Amsterdam, Noord-Holland"},
      "salary_min": 55000,
      "salary_max": 70000,
      "redirect_url": "https://www.adzuna.nl/details/4711",
      "created": "2025-03-17T09:00:00Z"
    },
    {
      "id": "4712",
      "title": "Software Engineer",
      "description": "On-site role.",
      "company": {"display_name": "Initech"},
      "location": {"display_name": "Amsterdam"},
      "redirect_url": "https://www.adzuna.nl/details/4712",
      "created": "not a date"
    }
  ]
}`

func TestAdzunaProvider_Search(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(adzunaBody))
	}))
	defer srv.Close()

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	p := NewAdzunaProvider(AdzunaConfig{
		AppID:             "id",
		AppKey:            "key",
		BaseURL:           srv.URL,
		RequestsPerSecond: 100,
		Now:               func() time.Time { return now },
	})

	listings, err := p.Search(context.Background(), Query{What: "software engineer", Where: "Amsterdam", Country: "nl"})
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "/nl/search/1", gotPath)
	assert.Equal(t, "id", gotQuery["app_id"])
	assert.Equal(t, "key", gotQuery["app_key"])
	assert.Equal(t, "software engineer", gotQuery["what"])
	assert.Equal(t, "Amsterdam", gotQuery["where"])
	assert.Equal(t, "20", gotQuery["results_per_page"])

	first := listings[0]
	assert.Equal(t, "4711", first.ID)
	assert.Equal(t, "Senior Software Engineer", first.Title)
	assert.Equal(t, "Build services in Go and React. Remote friendly & flexible.", first.Description)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "€55k - €70k", first.Salary)
	assert.True(t, first.Remote)
	assert.Equal(t, "3 days ago", first.PostedDate)
	assert.Equal(t, SourceAdzuna, first.Source)

	second := listings[1]
	assert.False(t, second.Remote)
	assert.Empty(t, second.Salary)
	assert.Empty(t, second.PostedDate)
}

func TestAdzunaProvider_MissingCredentials(t *testing.T) {
	p := NewAdzunaProvider(AdzunaConfig{AppID: "id"})
	_, err := p.Search(context.Background(), Query{What: "nurse"})
	assert.True(t, errors.Is(err, ErrMissingCredentials))
	assert.False(t, p.HasCredentials())
}

func TestAdzunaProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewAdzunaProvider(AdzunaConfig{AppID: "id", AppKey: "key", BaseURL: srv.URL, RequestsPerSecond: 100})
	_, err := p.Search(context.Background(), Query{What: "nurse"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestAdzunaProvider_DefaultCountry(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	p := NewAdzunaProvider(AdzunaConfig{AppID: "id", AppKey: "key", BaseURL: srv.URL, RequestsPerSecond: 100})
	listings, err := p.Search(context.Background(), Query{What: "nurse"})
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Equal(t, "/us/search/1", gotPath)
}
