package timetable

import (
	"strings"
	"testing"

	"github.com/haneulsoft/timetable-backend/internal/model"
)

func TestNormalizeForSearch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CS101 Intro", "cs101 intro"},
		{"  데이터  구조  ", "데이터 구조"},
		{"CS.101/A-1", "cs 101 a 1"},
		{"(월) 10:30~12:00", "월 10 30 12 00"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeForSearch(tt.in); got != tt.want {
			t.Errorf("NormalizeForSearch(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreTokenSubstring(t *testing.T) {
	tests := []struct {
		name  string
		token string
		field string
		want  int
	}{
		{"exact match", "cs101", "cs101", 540},
		{"prefix with longer field", "cs101", "cs101 intro", 540 - 0 - 6},
		{"later match pays position penalty", "cs101", "intro cs101", 540 - 6*4 - 6},
		{"both penalties capped", "x", strings.Repeat("a", 150) + "x", 540 - 240 - 140},
		{"korean substring", "자료구조", "자료구조 및 실습", 540 - 0 - 5},
		{"no match single char", "q", "cs101", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreToken(tt.token, tt.field); got != tt.want {
				t.Errorf("scoreToken(%q, %q) = %d, want %d", tt.token, tt.field, got, tt.want)
			}
		})
	}
}

func TestScoreTokenSubsequence(t *testing.T) {
	tests := []struct {
		name  string
		token string
		field string
		want  int
	}{
		// "ab" over "axb": matches at 0 and 2, gap 1.
		{"single gap", "ab", "axb", 290 - 3 - 1},
		// "ab" over "axxxb": gap 3.
		{"larger gap", "ab", "axxxb", 290 - 9 - 3},
		{"not a subsequence", "ba", "axb", 0},
		{"single char token never falls back", "a", "xxa", 0},
		// Both penalties capped: the weakest possible subsequence hit
		// still scores 10, never zero.
		{"both penalties capped", "ab", "a" + strings.Repeat("x", 100) + "b", 290 - 190 - 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreToken(tt.token, tt.field); got != tt.want {
				t.Errorf("scoreToken(%q, %q) = %d, want %d", tt.token, tt.field, got, tt.want)
			}
		})
	}
}

func TestSubsequenceGapIsGreedy(t *testing.T) {
	// Greedy first-match: "ab" over "aab" matches index 0 then 2 for a
	// total gap of 1, even though positions 1,2 would be tighter.
	if got := subsequenceGap([]rune("ab"), []rune("aab")); got != 1 {
		t.Errorf("subsequenceGap = %d, want 1", got)
	}
}

func rankFixture() []model.Section {
	// Already in canonical order: ties must preserve it.
	return []model.Section{
		{
			ID:           "CS101::월 10:30~12:00::김철수",
			CourseCode:   "CS101",
			SearchFields: []string{"cs101", "프로그래밍 기초", "김철수"},
		},
		{
			ID:           "CS202::화 13:00~14:30::이영희",
			CourseCode:   "CS202",
			SearchFields: []string{"cs202", "자료구조", "이영희"},
		},
		{
			ID:           "MAS101::수 09:00~10:30::박민준",
			CourseCode:   "MAS101",
			SearchFields: []string{"mas101", "미적분학", "박민준"},
		},
	}
}

func TestRankEmptyQueryPassesThrough(t *testing.T) {
	sections := rankFixture()
	got := Rank(sections, "   ")
	if len(got) != len(sections) {
		t.Fatalf("got %d sections, want %d", len(got), len(sections))
	}
	for i := range got {
		if got[i].ID != sections[i].ID {
			t.Errorf("order changed at %d: got %s, want %s", i, got[i].ID, sections[i].ID)
		}
	}
}

func TestRankExactCodeFirst(t *testing.T) {
	got := Rank(rankFixture(), "CS202")
	if len(got) == 0 {
		t.Fatal("no results")
	}
	if got[0].CourseCode != "CS202" {
		t.Errorf("top result = %s, want CS202", got[0].CourseCode)
	}
}

func TestRankAndSemantics(t *testing.T) {
	// "cs101" matches the first section but "zzz" matches nothing, so
	// the whole query must return zero results.
	if got := Rank(rankFixture(), "CS101 zzz"); len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestRankMultiTokenSumsScores(t *testing.T) {
	got := Rank(rankFixture(), "cs101 김철수")
	if len(got) != 1 || got[0].CourseCode != "CS101" {
		t.Fatalf("got %v, want only CS101", got)
	}
}

func TestRankTiesKeepCanonicalOrder(t *testing.T) {
	sections := []model.Section{
		{ID: "a", CourseCode: "AA100", SearchFields: []string{"shared"}},
		{ID: "b", CourseCode: "AA200", SearchFields: []string{"shared"}},
	}
	got := Rank(sections, "shared")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("tie order broken: %v", got)
	}
}

func TestRankExcludesNonMatching(t *testing.T) {
	got := Rank(rankFixture(), "자료구조")
	if len(got) != 1 || got[0].CourseCode != "CS202" {
		t.Fatalf("got %v, want only CS202", got)
	}
}
