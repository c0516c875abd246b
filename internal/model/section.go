package model

import "fmt"

// Session is one weekly recurring time block of a section. Start and End
// are minutes since midnight with End > Start, enforced at parse time.
type Session struct {
	Day   Weekday `json:"day"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// Label renders the session for display, e.g. "월 10:30~12:00".
func (s Session) Label() string {
	return fmt.Sprintf("%s %s~%s", s.Day, FormatMinutes(s.Start), FormatMinutes(s.End))
}

// Section is a single offered class instance for the configured term.
// Sections are built once at catalog load and never mutated afterwards.
type Section struct {
	// ID is course code + normalized lecture-time string + instructor,
	// joined with "::". Identical offerings collapse naturally.
	ID           string    `json:"id"`
	CourseCode   string    `json:"course_code"`
	CourseName   string    `json:"course_name"`
	Instructor   string    `json:"instructor"`
	Department   string    `json:"department"`
	Category     string    `json:"category_name"`
	Credits      float64   `json:"credits"`
	LectureTime  string    `json:"lecture_time"`
	Classroom    string    `json:"classroom"`
	DeliveryMode string    `json:"delivery_mode"`
	Capacity     *int      `json:"capacity"`
	Enrollment   int       `json:"enrollment"`
	SeatInfo     string    `json:"seat_info"`
	Sessions     []Session `json:"sessions"`

	// SearchFields are the normalized haystacks the ranker scores tokens
	// against. Derived from every display field; not part of the API.
	SearchFields []string `json:"-"`
}

// FormatMinutes renders minutes since midnight as "HH:MM".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
