// Package ranking scores job listings against a candidate profile.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/jobsearch"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

const (
	BaseScore     = 50
	SkillPoints   = 5
	TitlePoints   = 15
	MaxMatches    = 8
	reasonSkills  = 3
	NeutralReason = "Matches your search criteria"
	genericReason = "Good fit for your industry background"
)

// RankedJobListing is a listing with its relevance to the candidate.
type RankedJobListing struct {
	jobsearch.JobListing
	MatchScore     int      `json:"matchScore"`
	MatchReason    string   `json:"matchReason"`
	KeywordMatches []string `json:"keywordMatches"`
}

// Rank scores every listing and returns them by descending score. Equal
// scores keep their input order. Without a profile every listing gets the
// neutral base score.
func Rank(listings []jobsearch.JobListing, p *profile.CandidateProfile) []RankedJobListing {
	out := make([]RankedJobListing, len(listings))
	if p.IsEmpty() {
		for i, l := range listings {
			out[i] = RankedJobListing{
				JobListing:     l,
				MatchScore:     BaseScore,
				MatchReason:    NeutralReason,
				KeywordMatches: []string{},
			}
		}
		return out
	}

	skills := p.TopSkills(0)
	role := p.LatestRole()
	for i, l := range listings {
		out[i] = Score(l, skills, role)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// Score rates one listing: the base score, plus SkillPoints for every skill
// found in the title or description, plus TitlePoints when role appears
// there, clamped to [0, 100].
func Score(l jobsearch.JobListing, skills []string, role string) RankedJobListing {
	text := strings.ToLower(l.Title + " " + l.Description)

	var matched []string
	for _, s := range skills {
		if s != "" && strings.Contains(text, strings.ToLower(s)) {
			matched = append(matched, s)
		}
	}
	score := BaseScore + SkillPoints*len(matched)
	if role != "" && strings.Contains(text, strings.ToLower(role)) {
		score += TitlePoints
	}

	reported := matched
	if len(reported) > MaxMatches {
		reported = reported[:MaxMatches]
	}
	if reported == nil {
		reported = []string{}
	}

	return RankedJobListing{
		JobListing:     l,
		MatchScore:     clamp(score, 0, 100),
		MatchReason:    reason(matched, role),
		KeywordMatches: reported,
	}
}

func reason(matched []string, role string) string {
	switch {
	case len(matched) > reasonSkills:
		return fmt.Sprintf("Matches your skills: %s...", strings.Join(matched[:reasonSkills], ", "))
	case len(matched) > 0:
		return fmt.Sprintf("Matches your skills: %s", strings.Join(matched, ", "))
	case role != "":
		return fmt.Sprintf("Related to your experience as %s", role)
	default:
		return genericReason
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
