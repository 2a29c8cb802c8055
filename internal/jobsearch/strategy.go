package jobsearch

import "strings"

// SearchStrategy is one step of the search waterfall.
type SearchStrategy struct {
	Query             string
	Location          string
	FallbackPermitted bool
}

// SearchRequest describes what the caller wants searched.
type SearchRequest struct {
	Queries     []string
	Location    string
	PrimaryRole string

	// AllowSynthetic lets fallback-permitted strategies return placeholder
	// listings instead of nothing. It must stay false in production.
	AllowSynthetic bool
}

// roleModifiers never count as the significant word of a role.
var roleModifiers = map[string]bool{
	"senior": true, "junior": true, "medior": true, "lead": true, "principal": true,
	"head": true, "chief": true, "staff": true, "entry": true, "level": true,
	"entry-level": true, "trainee": true, "remote": true, "part-time": true,
	"full-time": true, "freelance": true, "of": true, "and": true, "&": true,
	"sr": true, "jr": true, "sr.": true, "jr.": true, "i": true, "ii": true, "iii": true,
}

// SignificantWord returns the head noun of a role term: the last word that
// is not a seniority or contract modifier.
func SignificantWord(role string) string {
	words := strings.Fields(role)
	for i := len(words) - 1; i >= 0; i-- {
		w := strings.Trim(words[i], ",.()")
		if w != "" && !roleModifiers[strings.ToLower(w)] {
			return w
		}
	}
	return ""
}

// BuildStrategies lays out the waterfall: every query with the narrowed
// location, then the significant word of the primary role, then the first
// two queries without a location.
func BuildStrategies(req SearchRequest) []SearchStrategy {
	where := NarrowLocation(req.Location)

	var out []SearchStrategy
	for _, q := range req.Queries {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, SearchStrategy{Query: q, Location: where})
		}
	}

	if word := SignificantWord(req.PrimaryRole); word != "" {
		out = append(out, SearchStrategy{Query: word, Location: where, FallbackPermitted: true})
	}

	if where != "" {
		n := 0
		for _, q := range req.Queries {
			if n == 2 {
				break
			}
			if q = strings.TrimSpace(q); q != "" {
				out = append(out, SearchStrategy{Query: q, FallbackPermitted: true})
				n++
			}
		}
	}
	return out
}
