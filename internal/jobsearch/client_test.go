package jobsearch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider answers from a fixed table keyed by "what|where".
type fakeProvider struct {
	results map[string][]JobListing
	err     error
	calls   []Query
}

func (f *fakeProvider) Search(_ context.Context, q Query) ([]JobListing, error) {
	f.calls = append(f.calls, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[q.What+"|"+q.Where], nil
}

func TestSignificantWord(t *testing.T) {
	tests := map[string]string{
		"software developer":         "developer",
		"Senior Project Manager":     "Manager",
		"nurse":                      "nurse",
		"Lead Engineer II":           "Engineer",
		"head of marketing (remote)": "marketing",
		"":                           "",
		"senior junior":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SignificantWord(in), "SignificantWord(%q)", in)
	}
}

func TestBuildStrategies(t *testing.T) {
	got := BuildStrategies(SearchRequest{
		Queries:     []string{"software developer", " ", "web developer", "frontend engineer"},
		Location:    "Amsterdam, North Holland",
		PrimaryRole: "software developer",
	})

	want := []SearchStrategy{
		{Query: "software developer", Location: "Amsterdam"},
		{Query: "web developer", Location: "Amsterdam"},
		{Query: "frontend engineer", Location: "Amsterdam"},
		{Query: "developer", Location: "Amsterdam", FallbackPermitted: true},
		{Query: "software developer", FallbackPermitted: true},
		{Query: "web developer", FallbackPermitted: true},
	}
	assert.Equal(t, want, got)
}

func TestBuildStrategies_NoLocationNoRole(t *testing.T) {
	got := BuildStrategies(SearchRequest{Queries: []string{"nurse"}})
	assert.Equal(t, []SearchStrategy{{Query: "nurse"}}, got)
}

func TestSearch_StopsAtFirstResult(t *testing.T) {
	listing := JobListing{ID: "1", Title: "Web Developer"}
	p := &fakeProvider{results: map[string][]JobListing{
		"web developer|Amsterdam": {listing},
	}}
	c := NewClient(p)

	res := c.Search(context.Background(), SearchRequest{
		Queries:     []string{"software developer", "web developer", "frontend engineer"},
		Location:    "Amsterdam",
		PrimaryRole: "software developer",
	})

	require.Len(t, res.Listings, 1)
	assert.Equal(t, "Web Developer", res.Listings[0].Title)
	assert.Equal(t, 2, res.Attempts)
	assert.Len(t, p.calls, 2)
	assert.Equal(t, "nl", p.calls[0].Country)
	assert.False(t, res.Synthetic)
}

func TestSearch_DropsLocationLast(t *testing.T) {
	p := &fakeProvider{results: map[string][]JobListing{
		"nurse|": {{ID: "n1", Title: "Nurse"}},
	}}
	res := NewClient(p).Search(context.Background(), SearchRequest{
		Queries:     []string{"nurse"},
		Location:    "Breda",
		PrimaryRole: "nurse",
	})

	require.Len(t, res.Listings, 1)
	require.NotNil(t, res.Strategy)
	assert.Equal(t, "", res.Strategy.Location)
	// "nurse|Breda" is tried once even though two strategies name it.
	assert.Equal(t, []Query{
		{What: "nurse", Where: "Breda", Country: "nl"},
		{What: "nurse", Where: "", Country: "nl"},
	}, p.calls)
}

func TestSearch_AllEmptyWithoutFallback(t *testing.T) {
	p := &fakeProvider{results: map[string][]JobListing{}}
	res := NewClient(p).Search(context.Background(), SearchRequest{
		Queries:     []string{"software developer"},
		Location:    "Amsterdam",
		PrimaryRole: "software developer",
	})

	assert.NotNil(t, res.Listings)
	assert.Empty(t, res.Listings)
	assert.Nil(t, res.Strategy)
	assert.Equal(t, 3, res.Attempts)
}

func TestSearch_ErrorsCountAsEmpty(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	res := NewClient(p).Search(context.Background(), SearchRequest{Queries: []string{"chef"}, Location: "Gent", PrimaryRole: "chef"})
	assert.Empty(t, res.Listings)
}

func TestSearch_NoCredentialsNoFallback(t *testing.T) {
	p := NewAdzunaProvider(AdzunaConfig{})
	for _, req := range []SearchRequest{
		{Queries: []string{"developer"}, Location: "Amsterdam", PrimaryRole: "developer"},
		{Queries: []string{"nurse"}},
		{},
	} {
		res := NewClient(p).Search(context.Background(), req)
		assert.NotNil(t, res.Listings)
		assert.Empty(t, res.Listings)
	}
}

func TestSearch_SyntheticOnlyWhenPermitted(t *testing.T) {
	p := &fakeProvider{err: ErrMissingCredentials}
	req := SearchRequest{
		Queries:        []string{"software developer"},
		Location:       "Utrecht",
		PrimaryRole:    "software developer",
		AllowSynthetic: true,
	}
	res := NewClient(p).Search(context.Background(), req)

	require.True(t, res.Synthetic)
	require.NotEmpty(t, res.Listings)
	assert.Equal(t, "developer", res.Strategy.Query)
	for _, l := range res.Listings {
		assert.Equal(t, SourceSynthetic, l.Source)
		assert.Equal(t, "Utrecht", l.Location)
	}
	// The non-fallback strategy must not produce synthetic listings.
	assert.Equal(t, 2, res.Attempts)
}

func TestSearch_NilProvider(t *testing.T) {
	res := NewClient(nil).Search(context.Background(), SearchRequest{Queries: []string{"x"}})
	assert.Empty(t, res.Listings)
}

func TestSearch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &fakeProvider{}
	res := NewClient(p).Search(ctx, SearchRequest{Queries: []string{"a", "b"}, AllowSynthetic: true, PrimaryRole: "a"})
	assert.Empty(t, res.Listings)
	assert.Empty(t, p.calls)
}

func TestSynthetic_Deterministic(t *testing.T) {
	a := Synthetic("data analyst", "Leiden")
	b := Synthetic("Data Analyst", "leiden")

	require.Len(t, a, 3)
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}
	assert.Equal(t, "Senior Data Analyst", a[1].Title)
	assert.True(t, a[1].Remote)
	assert.False(t, a[0].Remote)
	assert.Equal(t, "Remote", Synthetic("chef", "")[0].Location)
}
