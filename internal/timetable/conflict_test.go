package timetable

import (
	"testing"

	"github.com/haneulsoft/timetable-backend/internal/model"
)

func section(id string, sessions ...model.Session) model.Section {
	return model.Section{ID: id, Sessions: sessions}
}

func TestConflictIDsOverlapMarksBoth(t *testing.T) {
	conflicts := ConflictIDs([]model.Section{
		section("a", model.Session{Day: model.Monday, Start: 600, End: 690}),
		section("b", model.Session{Day: model.Monday, Start: 660, End: 750}),
	})
	if !conflicts["a"] || !conflicts["b"] {
		t.Errorf("both sections should conflict, got %v", conflicts)
	}
}

func TestConflictIDsTouchingBoundaryIsNotConflict(t *testing.T) {
	conflicts := ConflictIDs([]model.Section{
		section("a", model.Session{Day: model.Monday, Start: 600, End: 660}),
		section("b", model.Session{Day: model.Monday, Start: 660, End: 720}),
	})
	if len(conflicts) != 0 {
		t.Errorf("back-to-back sessions should not conflict, got %v", conflicts)
	}
}

func TestConflictIDsDifferentDaysNeverConflict(t *testing.T) {
	conflicts := ConflictIDs([]model.Section{
		section("a", model.Session{Day: model.Monday, Start: 600, End: 690}),
		section("b", model.Session{Day: model.Tuesday, Start: 600, End: 690}),
	})
	if len(conflicts) != 0 {
		t.Errorf("sessions on different days should not conflict, got %v", conflicts)
	}
}

func TestConflictIDsContainment(t *testing.T) {
	// One session fully inside another still overlaps.
	conflicts := ConflictIDs([]model.Section{
		section("outer", model.Session{Day: model.Friday, Start: 540, End: 720}),
		section("inner", model.Session{Day: model.Friday, Start: 600, End: 660}),
	})
	if !conflicts["outer"] || !conflicts["inner"] {
		t.Errorf("contained session should conflict, got %v", conflicts)
	}
}

func TestConflictIDsChainMarksAllInvolved(t *testing.T) {
	// a overlaps b, b overlaps c, but a and c are disjoint. All three
	// carry the flag because each has at least one overlapping session.
	conflicts := ConflictIDs([]model.Section{
		section("a", model.Session{Day: model.Wednesday, Start: 600, End: 670}),
		section("b", model.Session{Day: model.Wednesday, Start: 660, End: 730}),
		section("c", model.Session{Day: model.Wednesday, Start: 720, End: 790}),
	})
	for _, id := range []string{"a", "b", "c"} {
		if !conflicts[id] {
			t.Errorf("section %s should be flagged, got %v", id, conflicts)
		}
	}
}

func TestConflictIDsNoSessions(t *testing.T) {
	conflicts := ConflictIDs([]model.Section{
		section("a"),
		section("b"),
	})
	if len(conflicts) != 0 {
		t.Errorf("sections without sessions cannot conflict, got %v", conflicts)
	}
}

func TestWouldOverlapHints(t *testing.T) {
	selected := []model.Section{
		section("sel", model.Session{Day: model.Monday, Start: 600, End: 690}),
	}
	index := BuildSelectedIndex(selected)

	overlapping := section("cand", model.Session{Day: model.Monday, Start: 660, End: 750})
	if !index.WouldOverlap(overlapping) {
		t.Error("overlapping candidate should hint")
	}

	touching := section("cand", model.Session{Day: model.Monday, Start: 690, End: 750})
	if index.WouldOverlap(touching) {
		t.Error("back-to-back candidate should not hint")
	}

	otherDay := section("cand", model.Session{Day: model.Tuesday, Start: 600, End: 690})
	if index.WouldOverlap(otherDay) {
		t.Error("candidate on a free day should not hint")
	}
}

func TestWouldOverlapSkipsOwnSessions(t *testing.T) {
	selected := []model.Section{
		section("sel", model.Session{Day: model.Monday, Start: 600, End: 690}),
	}
	index := BuildSelectedIndex(selected)

	// The already-selected section must never hint against itself.
	if index.WouldOverlap(selected[0]) {
		t.Error("selected section hinted against its own sessions")
	}
}

func TestWouldOverlapNilIndex(t *testing.T) {
	var index *SelectedIndex
	if index.WouldOverlap(section("a", model.Session{Day: model.Monday, Start: 600, End: 690})) {
		t.Error("nil index should never hint")
	}
}
