package intent

import (
	"github.com/LadFoxTom/hirekit-app-sub001/internal/jobsearch"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/locale"
)

// Intent is the task category a message is routed to.
type Intent string

const (
	JobSearch   Intent = "job_search"
	CoverLetter Intent = "cover_letter"
	OpenChat    Intent = "open_chat"
)

// Classify routes message. Job search wins over cover letter; anything
// else is open chat. A reply to an earlier search suggestion ("try
// Utrecht instead") also counts as a job search.
func Classify(message string) Intent {
	switch {
	case locale.Contains(message, locale.JobSearchIntent):
		return JobSearch
	case locale.Contains(message, locale.CoverLetterIntent):
		return CoverLetter
	case isSearchContinuation(message):
		return JobSearch
	default:
		return OpenChat
	}
}

// isSearchContinuation needs a try cue plus a refinement: a search cue, a
// known place, or a work mode such as remote next to a job noun.
func isSearchContinuation(message string) bool {
	if !locale.Contains(message, locale.TryCue) {
		return false
	}
	switch {
	case locale.Contains(message, locale.SearchCue), jobsearch.MentionsPlace(message):
		return true
	default:
		return locale.Contains(message, locale.WorkModeCue) && locale.Contains(message, locale.JobNounCue)
	}
}
