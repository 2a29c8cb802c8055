package profile

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultContextBytes is the serialized profile budget used when none is configured.
	DefaultContextBytes = 8000

	// TruncationMarker is appended to a profile context cut at the budget.
	TruncationMarker = "\n[profile truncated]"

	maxDigestChars = 600
)

// IsEmpty reports whether p carries nothing usable.
func (p *CandidateProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.FullName == "" && p.Title == "" && p.Summary == "" &&
		len(p.Skills) == 0 && len(p.Experience) == 0 && len(p.Education) == 0
}

// LatestRole returns the title of the most recent experience entry, falling
// back to the profile headline.
func (p *CandidateProfile) LatestRole() string {
	if p == nil {
		return ""
	}
	for _, e := range p.Experience {
		if t := strings.TrimSpace(e.Title); t != "" {
			return t
		}
	}
	return strings.TrimSpace(p.Title)
}

// LatestCompany returns the employer of the most recent experience entry.
func (p *CandidateProfile) LatestCompany() string {
	if p == nil {
		return ""
	}
	for _, e := range p.Experience {
		if c := strings.TrimSpace(e.Company); c != "" {
			return c
		}
	}
	return ""
}

// TopSkills returns up to n distinct, non-blank skills in profile order.
// n <= 0 returns all of them.
func (p *CandidateProfile) TopSkills(n int) []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]bool, len(p.Skills))
	var out []string
	for _, s := range p.Skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// Context serializes p for inclusion in a prompt, cut to maxBytes with
// TruncationMarker appended when the budget is exceeded.
func (p *CandidateProfile) Context(maxBytes int) string {
	if p.IsEmpty() {
		return ""
	}
	if maxBytes <= 0 {
		maxBytes = DefaultContextBytes
	}

	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return ""
	}
	s := string(b)
	if len(s) <= maxBytes {
		return s
	}
	return truncateUTF8(s, maxBytes) + TruncationMarker
}

// Digest returns a short one-paragraph description of p used by the
// search-parameter reasoning prompt.
func (p *CandidateProfile) Digest() string {
	if p.IsEmpty() {
		return ""
	}

	var parts []string
	if p.Title != "" {
		parts = append(parts, fmt.Sprintf("Headline: %s.", p.Title))
	}
	if role := p.LatestRole(); role != "" {
		if company := p.LatestCompany(); company != "" {
			parts = append(parts, fmt.Sprintf("Most recent role: %s at %s.", role, company))
		} else {
			parts = append(parts, fmt.Sprintf("Most recent role: %s.", role))
		}
	}
	if skills := p.TopSkills(10); len(skills) > 0 {
		parts = append(parts, fmt.Sprintf("Skills: %s.", strings.Join(skills, ", ")))
	}
	if p.Location != "" {
		parts = append(parts, fmt.Sprintf("Based in %s.", p.Location))
	}
	if len(p.Languages) > 0 {
		parts = append(parts, fmt.Sprintf("Languages: %s.", strings.Join(p.Languages, ", ")))
	}

	digest := strings.Join(parts, " ")
	if len(digest) > maxDigestChars {
		end := len(truncateUTF8(digest, maxDigestChars))
		if idx := strings.LastIndex(digest[:end], " "); idx > 0 {
			digest = digest[:idx]
		} else {
			digest = digest[:end]
		}
	}
	return digest
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	end := n
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}
