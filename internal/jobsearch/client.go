package jobsearch

import (
	"context"
	"log/slog"
)

// Result is the outcome of a waterfall search.
type Result struct {
	Listings  []JobListing
	Strategy  *SearchStrategy
	Attempts  int
	Synthetic bool
}

// Client runs the search waterfall against a Provider.
type Client struct {
	provider Provider
}

// NewClient creates a Client. A nil provider behaves as one without
// credentials.
func NewClient(p Provider) *Client {
	return &Client{provider: p}
}

// Search evaluates the strategies of req in order and stops at the first
// one that yields listings. Provider errors count as empty results. When a
// fallback-permitted strategy comes back empty and req.AllowSynthetic is
// set, placeholder listings are returned instead. Listings is never nil.
func (c *Client) Search(ctx context.Context, req SearchRequest) Result {
	country := CountryCode(req.Location)
	tried := make(map[SearchStrategy]bool)
	res := Result{Listings: []JobListing{}}

	for _, s := range BuildStrategies(req) {
		if ctx.Err() != nil {
			return res
		}

		key := SearchStrategy{Query: s.Query, Location: s.Location}
		if !tried[key] {
			tried[key] = true
			res.Attempts++
			listings := c.attempt(ctx, Query{What: s.Query, Where: s.Location, Country: country})
			if len(listings) > 0 {
				res.Listings = listings
				res.Strategy = &s
				return res
			}
		}

		if s.FallbackPermitted && req.AllowSynthetic {
			slog.Info("job search using synthetic listings", "query", s.Query, "location", s.Location)
			res.Listings = Synthetic(s.Query, s.Location)
			res.Strategy = &s
			res.Synthetic = true
			return res
		}
	}
	return res
}

func (c *Client) attempt(ctx context.Context, q Query) []JobListing {
	if c.provider == nil {
		return nil
	}
	listings, err := c.provider.Search(ctx, q)
	if err != nil {
		slog.Warn("job provider search failed", "query", q.What, "location", q.Where, "country", q.Country, "error", err)
		return nil
	}
	slog.Debug("job provider search", "query", q.What, "location", q.Where, "country", q.Country, "results", len(listings))
	return listings
}
