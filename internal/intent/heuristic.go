package intent

import (
	"regexp"
	"strings"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

// GenericRole is the query used when a location is known but no role is.
const GenericRole = "job"

var (
	// placePattern captures capitalized words after a location preposition.
	placePattern = regexp.MustCompile(`\b((?i:in|near|at|around|for))\s+(\p{Lu}[\p{L}'.-]*(?:[ \t]+\p{Lu}[\p{L}'.-]*)*)`)
	fieldPattern = regexp.MustCompile(`(?i)\blocation\s*:\s*([^,\n;]+)`)

	rolePattern = regexp.MustCompile(`(?i)\b(?:find(?:\s+me)?|search(?:ing)?(?:\s+for)?|looking\s+for|look\s+for|seeking)\s+([^,.;!?]+)`)
	nounPattern = regexp.MustCompile(`(?i)((?:[\p{L}.+#-]+\s+){1,3})(?:jobs|positions|vacancies|openings|roles)\b`)
	cutPattern  = regexp.MustCompile(`(?i)\s(?:in|near|at|around)\s`)

	sentenceEnd = regexp.MustCompile(`[.!?][ \t]`)
)

// placeAbbreviations may end in a period inside a place name.
var placeAbbreviations = map[string]bool{"st": true, "ste": true, "mt": true, "ft": true}

var fillerWords = map[string]bool{
	"jobs": true, "job": true, "for": true, "a": true, "an": true, "the": true,
	"in": true, "at": true, "near": true, "me": true, "some": true, "any": true,
	"positions": true, "position": true, "openings": true, "opening": true,
	"vacancies": true, "vacancy": true, "roles": true, "role": true, "as": true,
	"work": true, "new": true, "open": true, "available": true, "are": true,
	"there": true, "i": true, "want": true, "need": true, "please": true,
	"can": true, "you": true, "show": true, "find": true, "to": true, "my": true,
}

// roleVocabulary is scanned when a location is present but no role was
// phrased.
var roleVocabulary = []string{
	"developer", "engineer", "programmer", "manager", "designer", "analyst",
	"consultant", "accountant", "architect", "scientist", "administrator",
	"specialist", "assistant", "technician", "nurse", "teacher", "recruiter",
	"marketer", "writer", "editor", "driver", "electrician", "mechanic",
	"chef", "cook", "cashier", "intern", "ontwikkelaar", "verpleegkundige",
	"docent", "entwickler", "ingenieur", "développeur", "desarrollador",
}

// Heuristic extracts search parameters with patterns only.
func Heuristic(message string, p *profile.CandidateProfile) SearchParameters {
	params := SearchParameters{
		Location: ExtractLocation(message),
		Skills:   []string{},
	}

	role := ExtractRole(message)
	if role == "" && params.Location != "" {
		role = scanVocabulary(message)
	}
	if role == "" && !p.IsEmpty() {
		if latest := p.LatestRole(); latest != "" {
			role = latest
			params.UseCandidateProfile = true
		}
	}
	if role == "" && params.Location != "" {
		role = GenericRole
	}

	switch {
	case role != "":
		params.JobTitle = role
		params.SearchQueries = []string{role}
	case !p.IsEmpty() && len(p.TopSkills(maxQueries)) > 0:
		params.UseCandidateProfile = true
		params.SearchQueries = p.TopSkills(maxQueries)
	default:
		params.SearchQueries = []string{}
	}
	if params.UseCandidateProfile {
		params.Skills = dedupe(p.TopSkills(5), 0)
	}

	params.HasEnoughInfo = len(params.SearchQueries) > 0
	params.Reasoning = "extracted from message patterns"
	return params
}

// ExtractLocation returns the last location cue in message: a capitalized
// place after in, near, at or around, or an explicit "location:" field.
// A place after "for" is used only when no other cue exists.
func ExtractLocation(message string) string {
	best, bestPos := "", -1
	weak, weakPos := "", -1

	for _, m := range placePattern.FindAllStringSubmatchIndex(message, -1) {
		prep := strings.ToLower(message[m[2]:m[3]])
		place := trimPlace(message[m[4]:m[5]])
		if place == "" || containsRoleWord(place) {
			continue
		}
		if prep == "for" {
			if m[0] > weakPos {
				weak, weakPos = place, m[0]
			}
			continue
		}
		if m[0] > bestPos {
			best, bestPos = place, m[0]
		}
	}
	for _, m := range fieldPattern.FindAllStringSubmatchIndex(message, -1) {
		if m[0] > bestPos {
			best, bestPos = strings.TrimSpace(message[m[2]:m[3]]), m[0]
		}
	}

	if bestPos >= 0 {
		return best
	}
	return weak
}

// trimPlace cuts a captured place at the end of its sentence and before a
// following "I", so "Utrecht. I have" and "Amsterdam I speak" both yield
// the city alone.
func trimPlace(place string) string {
	for _, loc := range sentenceEnd.FindAllStringIndex(place, -1) {
		words := strings.Fields(place[:loc[0]])
		if place[loc[0]] == '.' && len(words) > 0 && placeAbbreviations[strings.ToLower(words[len(words)-1])] {
			continue
		}
		place = place[:loc[0]]
		break
	}

	words := strings.Fields(strings.TrimRight(place, ".!?"))
	for i, w := range words {
		if i > 0 && (w == "I" || strings.HasPrefix(w, "I'")) {
			words = words[:i]
			break
		}
	}
	return strings.Join(words, " ")
}

// ExtractRole returns the role phrase of "find/search/looking for <role> in
// <place>" style requests with filler words removed.
func ExtractRole(message string) string {
	var phrase string
	if m := rolePattern.FindStringSubmatch(message); m != nil {
		phrase = m[1]
	} else if m := nounPattern.FindStringSubmatch(message); m != nil {
		phrase = m[1]
	}
	if loc := cutPattern.FindStringIndex(" " + phrase + " "); loc != nil {
		phrase = (" " + phrase)[:loc[0]]
	}
	return stripFiller(phrase)
}

func stripFiller(phrase string) string {
	var kept []string
	for _, w := range strings.Fields(phrase) {
		if fillerWords[strings.ToLower(w)] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func scanVocabulary(message string) string {
	lower := strings.ToLower(message)
	for _, noun := range roleVocabulary {
		if strings.Contains(lower, noun) {
			return noun
		}
	}
	return ""
}

func containsRoleWord(s string) bool {
	lower := strings.ToLower(s)
	for _, noun := range roleVocabulary {
		if strings.Contains(lower, noun) {
			return true
		}
	}
	return false
}
