package jobsearch

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var syntheticNamespace = uuid.MustParse("6f1c8a52-3b7e-4d1a-9c55-0e2f4b6a7d10")

var syntheticTemplates = []struct {
	prefix, company, description string
}{
	{"", "Northwind Labs", "Join a growing team working on %s projects. Hybrid setup with two office days a week."},
	{"Senior ", "Contoso Group", "Lead %s work across several product teams. Fully remote within the time zone."},
	{"Junior ", "Fabrikam", "Start your %s career with mentoring and a structured training budget."},
}

// Synthetic returns deterministic placeholder listings for query and
// location. The same input always yields the same listings and IDs.
func Synthetic(query, location string) []JobListing {
	title := titleCase(query)
	where := location
	if where == "" {
		where = "Remote"
	}

	out := make([]JobListing, 0, len(syntheticTemplates))
	for i, tpl := range syntheticTemplates {
		id := uuid.NewSHA1(syntheticNamespace, []byte(fmt.Sprintf("%s|%s|%d", strings.ToLower(query), strings.ToLower(location), i)))
		desc := fmt.Sprintf(tpl.description, strings.ToLower(query))
		out = append(out, JobListing{
			ID:          id.String(),
			Title:       tpl.prefix + title,
			Company:     tpl.company,
			Location:    where,
			Description: desc,
			URL:         "https://example.com/jobs/" + id.String(),
			Remote:      IsRemote(desc),
			PostedDate:  "Today",
			Source:      SourceSynthetic,
		})
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
