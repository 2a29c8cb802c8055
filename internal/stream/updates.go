package stream

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

// Updates is the canonical CV field-update payload. Absent fields are
// omitted, never defaulted.
type Updates struct {
	Title      string               `json:"title,omitempty"`
	Summary    string               `json:"summary,omitempty"`
	Skills     []string             `json:"skills,omitempty"`
	Experience []profile.Experience `json:"experience,omitempty"`
	Education  []profile.Education  `json:"education,omitempty"`
	Languages  []string             `json:"languages,omitempty"`
}

// IsEmpty reports whether u carries no field.
func (u *Updates) IsEmpty() bool {
	return u == nil || (u.Title == "" && u.Summary == "" && len(u.Skills) == 0 &&
		len(u.Experience) == 0 && len(u.Education) == 0 && len(u.Languages) == 0)
}

// Field name variants accepted for each canonical field, in preference order.
var (
	titleKeys       = []string{"title", "headline", "jobTitle", "professionalTitle"}
	summaryKeys     = []string{"summary", "profile", "about", "professionalSummary"}
	skillKeys       = []string{"skills", "technologies", "technicalSkills"}
	experienceKeys  = []string{"experience", "workExperience", "work", "positions", "jobs"}
	educationKeys   = []string{"education", "schooling", "studies"}
	languageKeys    = []string{"languages", "spokenLanguages"}
	roleKeys        = []string{"title", "position", "role", "jobTitle"}
	companyKeys     = []string{"company", "employer", "organization", "organisation"}
	startKeys       = []string{"startDate", "start", "from"}
	endKeys         = []string{"endDate", "end", "to"}
	descriptionKeys = []string{"description", "summary", "details"}
	achievementKeys = []string{"achievements", "highlights", "bullets", "content", "responsibilities"}
	degreeKeys      = []string{"degree", "qualification", "title", "program"}
	institutionKeys = []string{"institution", "school", "university", "college"}
	yearKeys        = []string{"year", "graduationYear", "endDate", "end"}
	itemTextKeys    = []string{"text", "content", "value", "name", "language", "description"}
)

// NormalizeUpdates coerces a free-form update object into Updates. It
// returns nil when nothing recognizable is present.
func NormalizeUpdates(raw map[string]any) *Updates {
	if len(raw) == 0 {
		return nil
	}
	u := &Updates{
		Title:     text(first(raw, titleKeys)),
		Summary:   text(first(raw, summaryKeys)),
		Skills:    strList(first(raw, skillKeys)),
		Languages: strList(first(raw, languageKeys)),
	}
	for _, item := range objects(first(raw, experienceKeys)) {
		e := profile.Experience{
			Title:        text(first(item, roleKeys)),
			Company:      text(first(item, companyKeys)),
			StartDate:    text(first(item, startKeys)),
			EndDate:      text(first(item, endKeys)),
			Description:  text(first(item, descriptionKeys)),
			Achievements: strList(first(item, achievementKeys)),
		}
		if e.Title != "" || e.Company != "" || e.Description != "" || len(e.Achievements) > 0 {
			u.Experience = append(u.Experience, e)
		}
	}
	for _, item := range objects(first(raw, educationKeys)) {
		e := profile.Education{
			Degree:      text(first(item, degreeKeys)),
			Institution: text(first(item, institutionKeys)),
			Year:        text(first(item, yearKeys)),
		}
		if e.Degree != "" || e.Institution != "" {
			u.Education = append(u.Education, e)
		}
	}
	if u.IsEmpty() {
		return nil
	}
	return u
}

// first returns the value of the first key present in m.
func first(m map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// text renders scalars as trimmed strings. Whole numbers print without a
// fraction so years survive JSON's float decoding.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		return text(first(t, itemTextKeys))
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// strList accepts an array of strings or objects, a newline or
// comma-separated string, or a single object.
func strList(v any) []string {
	var out []string
	add := func(s string) {
		s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "-•*"))
		if s != "" {
			out = append(out, s)
		}
	}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			add(text(item))
		}
	case string:
		sep := ","
		if strings.Contains(t, "\n") {
			sep = "\n"
		}
		for _, part := range strings.Split(t, sep) {
			add(part)
		}
	case map[string]any:
		add(text(t))
	}
	return out
}

// objects accepts an array of objects or a single object.
func objects(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		var out []map[string]any
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{t}
	}
	return nil
}
