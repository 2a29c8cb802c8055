package jobsearch

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var remotePattern = regexp.MustCompile(`(?i)\b(?:remote|work(?:ing)?[- ]from[- ]home|wfh|home[- ]based|telecommut\w*|telework\w*|thuiswerk\w*|home[- ]?office|télétravail|teletrabajo)\b`)

// IsRemote reports whether a description advertises remote or home work.
func IsRemote(description string) bool {
	return remotePattern.MatchString(description)
}

// FormatSalary renders a salary range with abbreviated amounts, e.g.
// "$45k - $60k". Zero bounds are treated as absent.
func FormatSalary(lo, hi float64, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	switch {
	case lo > 0 && hi > 0 && math.Round(lo) != math.Round(hi):
		return abbreviate(lo, symbol) + " - " + abbreviate(hi, symbol)
	case lo > 0:
		if hi > 0 {
			return abbreviate(lo, symbol)
		}
		return "From " + abbreviate(lo, symbol)
	case hi > 0:
		return "Up to " + abbreviate(hi, symbol)
	default:
		return ""
	}
}

func abbreviate(amount float64, symbol string) string {
	if amount >= 1000 {
		return fmt.Sprintf("%s%.0fk", symbol, math.Round(amount/1000))
	}
	return fmt.Sprintf("%s%.0f", symbol, math.Round(amount))
}

// RelativeTime renders a posting time relative to now, e.g. "3 days ago".
// Future times count as today.
func RelativeTime(posted, now time.Time) string {
	if posted.IsZero() {
		return ""
	}
	days := int(now.Sub(posted).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 14:
		return "1 week ago"
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days < 60:
		return "1 month ago"
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}

var blockTags = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "tr": true, "td": true,
}

// StripHTML returns the text content of an HTML fragment with whitespace
// collapsed. Provider titles and descriptions carry highlight markup.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				sb.WriteByte(' ')
			}
		}
	}
}
