package model

// Weekday is a day column of the timetable, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	WeekdayCount = 7
)

// dayLabels holds the single-character Korean labels used across the
// catalog feed and the rendered grid.
var dayLabels = [WeekdayCount]string{"월", "화", "수", "목", "금", "토", "일"}

// dayAliases maps every day token accepted by the lecture-time parser to
// its canonical weekday. The feed mixes English abbreviations and Korean
// single characters, sometimes within one string.
var dayAliases = map[string]Weekday{
	"Mon": Monday, "Tue": Tuesday, "Wed": Wednesday, "Thu": Thursday,
	"Fri": Friday, "Sat": Saturday, "Sun": Sunday,
	"월": Monday, "화": Tuesday, "수": Wednesday, "목": Thursday,
	"금": Friday, "토": Saturday, "일": Sunday,
}

// ParseWeekday resolves a day token (English abbreviation or Korean
// character) to its canonical weekday.
func ParseWeekday(token string) (Weekday, bool) {
	day, ok := dayAliases[token]
	return day, ok
}

// Valid reports whether d is one of the seven canonical weekdays.
func (d Weekday) Valid() bool {
	return d >= Monday && d < WeekdayCount
}

// String returns the Korean single-character label, e.g. "월" for Monday.
func (d Weekday) String() string {
	if !d.Valid() {
		return "?"
	}
	return dayLabels[d]
}
