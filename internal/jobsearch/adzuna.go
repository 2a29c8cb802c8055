package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAdzunaURL      = "https://api.adzuna.com/v1/api/jobs"
	defaultResultsPerPage = 20
	defaultRequestsPerSec = 1.0
	adzunaTimeout         = 15 * time.Second
)

// AdzunaConfig configures an AdzunaProvider.
type AdzunaConfig struct {
	AppID             string
	AppKey            string
	BaseURL           string
	RequestsPerSecond float64
	ResultsPerPage    int
	HTTPClient        *http.Client
	Now               func() time.Time
}

// AdzunaProvider searches the Adzuna jobs API. Requests share a token
// bucket so the waterfall stays within the API quota.
type AdzunaProvider struct {
	cfg     AdzunaConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewAdzunaProvider creates a provider. Missing credentials are accepted;
// every search then returns ErrMissingCredentials.
func NewAdzunaProvider(cfg AdzunaConfig) *AdzunaProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAdzunaURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSec
	}
	if cfg.ResultsPerPage <= 0 {
		cfg.ResultsPerPage = defaultResultsPerPage
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: adzunaTimeout}
	}
	return &AdzunaProvider{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// HasCredentials reports whether both app id and key are set.
func (p *AdzunaProvider) HasCredentials() bool {
	return p.cfg.AppID != "" && p.cfg.AppKey != ""
}

// adzunaResponse mirrors the top-level search response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Company     named   `json:"company"`
	Location    named   `json:"location"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
}

type named struct {
	DisplayName string `json:"display_name"`
}

// Search fetches the first result page for q.
func (p *AdzunaProvider) Search(ctx context.Context, q Query) ([]JobListing, error) {
	if !p.HasCredentials() {
		return nil, ErrMissingCredentials
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	country := q.Country
	if country == "" {
		country = DefaultCountry
	}

	params := url.Values{}
	params.Set("app_id", p.cfg.AppID)
	params.Set("app_key", p.cfg.AppKey)
	params.Set("results_per_page", strconv.Itoa(p.cfg.ResultsPerPage))
	params.Set("what", q.What)
	if q.Where != "" {
		params.Set("where", q.Where)
	}
	params.Set("content-type", "application/json")
	params.Set("sort_by", "relevance")

	endpoint := fmt.Sprintf("%s/%s/search/1?%s", p.cfg.BaseURL, url.PathEscape(country), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("adzuna returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decoding listings: %w", err)
	}

	now := p.cfg.Now()
	symbol := CurrencySymbol(country)
	listings := make([]JobListing, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		desc := StripHTML(r.Description)
		var posted time.Time
		if r.Created != "" {
			posted, _ = time.Parse(time.RFC3339, r.Created)
		}
		listings = append(listings, JobListing{
			ID:          r.ID,
			Title:       StripHTML(r.Title),
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: desc,
			URL:         r.RedirectURL,
			Salary:      FormatSalary(r.SalaryMin, r.SalaryMax, symbol),
			Remote:      IsRemote(desc),
			PostedDate:  RelativeTime(posted, now),
			Source:      SourceAdzuna,
			Posted:      posted,
		})
	}
	return listings, nil
}
