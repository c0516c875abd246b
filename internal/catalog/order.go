package catalog

import (
	"sort"

	"github.com/haneulsoft/timetable-backend/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortCanonical orders sections by course code ascending with a numeric,
// case-insensitive comparison (so "CS9" sorts before "CS10"), tie-broken
// by course name under Korean collation. This is the canonical catalog
// order; search ranking falls back to it on equal scores.
func SortCanonical(sections []model.Section) {
	codeCollator := collate.New(language.English, collate.Numeric, collate.Loose)
	nameCollator := collate.New(language.Korean)

	sort.SliceStable(sections, func(i, j int) bool {
		if d := codeCollator.CompareString(sections[i].CourseCode, sections[j].CourseCode); d != 0 {
			return d < 0
		}
		return nameCollator.CompareString(sections[i].CourseName, sections[j].CourseName) < 0
	})
}
