// Package locale holds the per-language keyword tables used for intent
// routing and language detection. Every locale lives in one table entry so
// adding a language touches a single place.
package locale

import (
	"strings"
	"unicode"
)

// Language is a supported locale code.
type Language string

const (
	English Language = "en"
	Dutch   Language = "nl"
	German  Language = "de"
	French  Language = "fr"
	Spanish Language = "es"
)

// Base is the language used when nothing else can be detected.
const Base = English

// Concern selects which keyword set of a table is consulted.
type Concern int

const (
	// JobSearchIntent keywords route a message to job search.
	JobSearchIntent Concern = iota
	// CoverLetterIntent keywords route a message to letter drafting.
	CoverLetterIntent
	// LanguageCue words identify the language a message is written in.
	LanguageCue
	// TryCue words mark a reply to an earlier search suggestion.
	TryCue
	// SearchCue words mark location or search refinements in such a reply.
	SearchCue
	// WorkModeCue words name a work arrangement such as remote or hybrid.
	// They only mark a search refinement next to a JobNounCue.
	WorkModeCue
	// JobNounCue words name a job or listing.
	JobNounCue
)

// Table is the keyword data of one locale.
type Table struct {
	Language Language
	Name     string
	Keywords map[Concern][]string
}

// wordBounded concerns only match whole words, the others match substrings.
var wordBounded = map[Concern]bool{
	LanguageCue: true,
	TryCue:      true,
	JobNounCue:  true,
}

var tables = map[Language]Table{
	English: {
		Language: English,
		Name:     "English",
		Keywords: map[Concern][]string{
			JobSearchIntent: {
				"jobs", "job search", "find a job", "find me a job", "find job",
				"looking for a job", "looking for work", "vacancies", "vacancy",
				"openings", "job listings", "hiring", "positions",
			},
			CoverLetterIntent: {
				"cover letter", "covering letter", "motivation letter",
				"letter of motivation", "application letter",
			},
			TryCue:    {"try", "retry", "what about", "how about"},
			SearchCue:   {"near", "nearby", "search", "instead", "elsewhere", "other cit", "another cit"},
			WorkModeCue: {"remote", "hybrid", "work from home", "on-site", "onsite"},
			JobNounCue: {
				"job", "jobs", "role", "roles", "position", "positions", "vacancy",
				"vacancies", "opening", "openings", "listing", "listings", "offer", "offers",
			},
		},
	},
	Dutch: {
		Language: Dutch,
		Name:     "Dutch",
		Keywords: map[Concern][]string{
			JobSearchIntent: {
				"vacatures", "banen", "zoek een baan", "zoek werk", "werk zoeken",
				"baan zoeken", "openstaande functies",
			},
			CoverLetterIntent: {"motivatiebrief", "sollicitatiebrief", "begeleidende brief"},
			LanguageCue: {
				"schrijf", "een", "voor", "mij", "ik", "graag", "motivatiebrief",
				"sollicitatiebrief", "vacature", "baan", "werk", "zoek", "bij", "het",
			},
			TryCue:    {"probeer", "probeer eens", "wat dacht je van"},
			SearchCue:   {"in de buurt", "zoek", "andere stad", "elders"},
			WorkModeCue: {"thuiswerk", "op afstand", "remote", "hybride"},
			JobNounCue:  {"baan", "banen", "vacature", "vacatures", "functie", "functies"},
		},
	},
	German: {
		Language: German,
		Name:     "German",
		Keywords: map[Concern][]string{
			JobSearchIntent: {
				"stellenangebote", "stellenanzeigen", "jobsuche", "stelle suchen",
				"arbeit suchen", "offene stellen",
			},
			CoverLetterIntent: {"anschreiben", "bewerbungsschreiben", "motivationsschreiben"},
			LanguageCue: {
				"ich", "bitte", "schreibe", "schreiben", "für", "mich", "eine", "einen",
				"anschreiben", "bewerbung", "bewerbungsschreiben", "stelle", "suche", "und",
			},
			TryCue:    {"versuch", "versuche", "probier", "probiere"},
			SearchCue:   {"in der nähe", "suche", "stattdessen", "andere stadt"},
			WorkModeCue: {"remote", "homeoffice", "hybrid"},
			JobNounCue:  {"job", "jobs", "stelle", "stellen", "stellenangebot", "stellenangebote"},
		},
	},
	French: {
		Language: French,
		Name:     "French",
		Keywords: map[Concern][]string{
			JobSearchIntent: {
				"offres d'emploi", "offre d'emploi", "chercher un emploi",
				"recherche d'emploi", "trouver un emploi", "emplois",
			},
			CoverLetterIntent: {"lettre de motivation", "lettre de présentation", "lettre de candidature"},
			LanguageCue: {
				"je", "pour", "moi", "écrire", "écris", "ecris", "une", "lettre",
				"emploi", "poste", "candidature", "cherche", "s'il",
			},
			TryCue:    {"essaie", "essaye", "essayez"},
			SearchCue:   {"près", "à proximité", "recherche", "ailleurs", "autre ville"},
			WorkModeCue: {"télétravail", "à distance", "hybride"},
			JobNounCue:  {"emploi", "emplois", "poste", "postes", "offre", "offres"},
		},
	},
	Spanish: {
		Language: Spanish,
		Name:     "Spanish",
		Keywords: map[Concern][]string{
			JobSearchIntent: {
				"ofertas de trabajo", "oferta de empleo", "buscar trabajo",
				"busco trabajo", "buscar empleo", "empleos", "vacantes",
			},
			CoverLetterIntent: {
				"carta de presentación", "carta de presentacion",
				"carta de motivación", "carta de motivacion",
			},
			LanguageCue: {
				"escribe", "escribir", "carta", "para", "mí", "mi", "una", "quiero",
				"trabajo", "empleo", "busco", "por favor", "presentación",
			},
			TryCue:    {"intenta", "prueba", "probemos"},
			SearchCue:   {"cerca", "busca", "otra ciudad"},
			WorkModeCue: {"remoto", "teletrabajo", "híbrido"},
			JobNounCue:  {"trabajo", "trabajos", "empleo", "empleos", "puesto", "puestos", "oferta", "ofertas", "vacante", "vacantes"},
		},
	},
}

// detectionOrder is the fixed priority in which non-base locales are
// checked. The base locale has no language cues and is the default.
var detectionOrder = []Language{Dutch, German, French, Spanish}

// matchOrder is the order in which tables are consulted for every other
// concern; the base locale goes first.
var matchOrder = []Language{English, Dutch, German, French, Spanish}

// Supported returns all supported languages, base first.
func Supported() []Language {
	out := make([]Language, len(matchOrder))
	copy(out, matchOrder)
	return out
}

// Parse returns the language for code and whether it is supported.
func Parse(code string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(code)))
	_, ok := tables[l]
	return l, ok
}

// Name returns the English name of the language, e.g. "Dutch".
func Name(l Language) string {
	if t, ok := tables[l]; ok {
		return t.Name
	}
	return tables[Base].Name
}

// Match reports the first locale whose keyword set for c occurs in text.
func Match(text string, c Concern) (Language, bool) {
	order := matchOrder
	if c == LanguageCue {
		order = detectionOrder
	}

	lower := strings.ToLower(text)
	padded := " " + normalizeWords(lower) + " "

	for _, lang := range order {
		for _, kw := range tables[lang].Keywords[c] {
			if wordBounded[c] {
				if strings.Contains(padded, " "+kw+" ") {
					return lang, true
				}
				continue
			}
			if strings.Contains(lower, kw) {
				return lang, true
			}
		}
	}
	return "", false
}

// Contains reports whether text matches any locale's keyword set for c.
func Contains(text string, c Concern) bool {
	_, ok := Match(text, c)
	return ok
}

// DetectLanguage returns the language text is written in, defaulting to
// the base language when no cue matches. The second result reports whether
// a cue matched.
func DetectLanguage(text string) (Language, bool) {
	if l, ok := Match(text, LanguageCue); ok {
		return l, true
	}
	return Base, false
}

// normalizeWords replaces punctuation with spaces so whole-word cues can be
// found with a padded substring search. Apostrophes are kept for cues like
// "s'il".
func normalizeWords(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			return r
		}
		return ' '
	}, s)
}
