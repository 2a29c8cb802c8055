package jobsearch

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultCountry is used when a location maps to no supported country.
const DefaultCountry = "us"

// countryAliases maps lower-case country names, native spellings and major
// cities to the provider's region codes.
var countryAliases = map[string]string{
	"united states": "us", "usa": "us", "us": "us", "america": "us",
	"new york": "us", "san francisco": "us", "chicago": "us", "seattle": "us",
	"boston": "us", "austin": "us", "los angeles": "us",

	"united kingdom": "gb", "uk": "gb", "great britain": "gb", "england": "gb",
	"scotland": "gb", "wales": "gb", "london": "gb", "manchester": "gb",
	"edinburgh": "gb", "birmingham": "gb",

	"netherlands": "nl", "the netherlands": "nl", "nederland": "nl", "holland": "nl",
	"amsterdam": "nl", "rotterdam": "nl", "utrecht": "nl", "the hague": "nl",
	"den haag": "nl", "eindhoven": "nl", "groningen": "nl", "breda": "nl",
	"leiden": "nl", "delft": "nl", "haarlem": "nl", "zwolle": "nl",
	"den bosch": "nl", "arnhem": "nl", "nijmegen": "nl", "tilburg": "nl",

	"germany": "de", "deutschland": "de", "berlin": "de", "munich": "de",
	"münchen": "de", "hamburg": "de", "frankfurt": "de", "cologne": "de", "köln": "de",

	"france": "fr", "paris": "fr", "lyon": "fr", "marseille": "fr", "toulouse": "fr",

	"spain": "es", "españa": "es", "espana": "es", "madrid": "es", "barcelona": "es",
	"valencia": "es", "sevilla": "es",

	"belgium": "be", "belgië": "be", "belgie": "be", "belgique": "be",
	"brussels": "be", "brussel": "be", "bruxelles": "be", "antwerp": "be",
	"antwerpen": "be", "gent": "be", "ghent": "be",

	"austria": "at", "österreich": "at", "vienna": "at", "wien": "at",
	"switzerland": "ch", "schweiz": "ch", "suisse": "ch", "zurich": "ch",
	"zürich": "ch", "geneva": "ch", "genève": "ch",
	"italy": "it", "italia": "it", "rome": "it", "milan": "it", "milano": "it",
	"poland": "pl", "polska": "pl", "warsaw": "pl", "krakow": "pl",
	"canada": "ca", "toronto": "ca", "vancouver": "ca", "montreal": "ca",
	"australia": "au", "sydney": "au", "melbourne": "au",
	"new zealand": "nz", "auckland": "nz",
	"india": "in", "bangalore": "in", "mumbai": "in",
	"singapore": "sg",
	"brazil": "br", "brasil": "br", "são paulo": "br",
	"mexico": "mx", "méxico": "mx",
	"south africa": "za", "cape town": "za", "johannesburg": "za",
}

var currencySymbols = map[string]string{
	"us": "$", "ca": "$", "au": "$", "nz": "$", "sg": "$", "mx": "$",
	"gb": "£", "in": "₹", "br": "R$", "za": "R", "pl": "zł", "ch": "CHF ",
	"nl": "€", "de": "€", "fr": "€", "es": "€", "be": "€", "at": "€", "it": "€",
}

// aliasesByLength lists aliases longest first so "new york" wins over "york".
var aliasesByLength = func() []string {
	keys := make([]string, 0, len(countryAliases))
	for k := range countryAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// CountryCode maps a free-text location to the provider's country code.
// Comma-separated parts are checked from last to first, then any known
// name contained in the location; unknown locations map to DefaultCountry.
func CountryCode(location string) string {
	lower := strings.ToLower(strings.TrimSpace(location))
	if lower == "" {
		return DefaultCountry
	}

	parts := strings.Split(lower, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		if code, ok := countryAliases[strings.TrimSpace(parts[i])]; ok {
			return code
		}
	}

	padded := " " + lower + " "
	for _, alias := range aliasesByLength {
		if len(alias) > 2 && strings.Contains(padded, " "+alias+" ") {
			return countryAliases[alias]
		}
	}
	return DefaultCountry
}

// MentionsPlace reports whether text names a known country or city as a
// whole word, ignoring case and punctuation.
func MentionsPlace(text string) bool {
	padded := " " + strings.Join(strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ") + " "
	for _, alias := range aliasesByLength {
		if len(alias) > 2 && strings.Contains(padded, " "+alias+" ") {
			return true
		}
	}
	return false
}

// CurrencySymbol returns the salary symbol for a country code.
func CurrencySymbol(country string) string {
	if s, ok := currencySymbols[country]; ok {
		return s
	}
	return "$"
}

// NarrowLocation keeps only the text before the first comma.
func NarrowLocation(location string) string {
	if i := strings.Index(location, ","); i >= 0 {
		location = location[:i]
	}
	return strings.TrimSpace(location)
}
