package timetable

import (
	"sort"

	"github.com/haneulsoft/timetable-backend/internal/model"
)

// daySession is one session tuple flattened for the per-day sweep.
type daySession struct {
	id    string
	start int
	end   int
}

// dayIndex holds all sessions of a section set grouped by weekday, each
// day sorted by (start, end). The sort is what makes the sweep's early
// break valid: once a later session starts at or after the current one
// ends, nothing further on that day can overlap it.
type dayIndex [model.WeekdayCount][]daySession

func buildDayIndex(sections []model.Section) *dayIndex {
	var index dayIndex
	for _, section := range sections {
		for _, session := range section.Sessions {
			if !session.Day.Valid() {
				continue
			}
			index[session.Day] = append(index[session.Day], daySession{
				id:    section.ID,
				start: session.Start,
				end:   session.End,
			})
		}
	}
	for day := range index {
		sort.Slice(index[day], func(i, j int) bool {
			if index[day][i].start != index[day][j].start {
				return index[day][i].start < index[day][j].start
			}
			return index[day][i].end < index[day][j].end
		})
	}
	return &index
}

// ConflictIDs returns the ids of every section in the given set that has
// at least one session overlapping a session of another selected section
// on the same day. Touching boundaries (end == start) do not overlap.
// The result is recomputed from scratch on every call; there is no
// incremental state.
func ConflictIDs(sections []model.Section) map[string]bool {
	conflicts := make(map[string]bool)
	index := buildDayIndex(sections)

	for day := range index {
		sessions := index[day]
		for i := 0; i < len(sessions); i++ {
			for j := i + 1; j < len(sessions); j++ {
				if sessions[j].start >= sessions[i].end {
					break
				}
				if overlaps(sessions[i], sessions[j]) {
					conflicts[sessions[i].id] = true
					conflicts[sessions[j].id] = true
				}
			}
		}
	}

	return conflicts
}

func overlaps(left, right daySession) bool {
	return left.start < right.end && right.start < left.end
}

// SelectedIndex is a prebuilt per-day view of a planner's selected
// sessions, used to answer would-overlap hints for candidate sections
// without rebuilding the index per candidate.
type SelectedIndex struct {
	index *dayIndex
}

// BuildSelectedIndex indexes the sessions of the currently selected
// sections for overlap hinting.
func BuildSelectedIndex(selected []model.Section) *SelectedIndex {
	return &SelectedIndex{index: buildDayIndex(selected)}
}

// WouldOverlap reports whether adding the candidate section would overlap
// any currently selected session. Sessions belonging to the candidate's
// own id are skipped, so an already-selected section never hints against
// itself.
func (s *SelectedIndex) WouldOverlap(candidate model.Section) bool {
	if s == nil || len(candidate.Sessions) == 0 {
		return false
	}

	for _, session := range candidate.Sessions {
		if !session.Day.Valid() {
			continue
		}
		for _, selected := range s.index[session.Day] {
			if selected.id == candidate.ID {
				continue
			}
			if selected.start >= session.End {
				break
			}
			if selected.start < session.End && session.Start < selected.end {
				return true
			}
		}
	}
	return false
}
