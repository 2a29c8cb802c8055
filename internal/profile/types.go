package profile

// CandidateProfile is the structured résumé a request may carry. It is
// expected to arrive already stripped of contact details.
type CandidateProfile struct {
	FullName   string       `json:"fullName,omitempty"`
	Title      string       `json:"title,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Location   string       `json:"location,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Languages  []string     `json:"languages,omitempty"`
}

// Experience is one role, most recent first.
type Experience struct {
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one degree or course.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}
