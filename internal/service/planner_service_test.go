package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/haneulsoft/timetable-backend/internal/model"
	"github.com/rs/zerolog"
)

type stubRowSource struct {
	rows []model.RawCourseRow
}

func (s *stubRowSource) FetchRows(ctx context.Context) ([]model.RawCourseRow, error) {
	return s.rows, nil
}

// memoryStore is an in-memory SelectionStore recording publishes.
type memoryStore struct {
	selections map[string][]string
	published  int
	loadErr    error
	saveErr    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{selections: map[string][]string{}}
}

func (m *memoryStore) Load(ctx context.Context, plannerID string) ([]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.selections[plannerID], nil
}

func (m *memoryStore) Save(ctx context.Context, plannerID string, ids []string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.selections[plannerID] = ids
	return nil
}

func (m *memoryStore) PublishSchedule(ctx context.Context, plannerID string, snapshot []byte) error {
	m.published++
	return nil
}

func testRow(code, name, lectureTime, instructor string) model.RawCourseRow {
	return model.RawCourseRow{
		Year:         "2026",
		TermCode:     "1",
		DivisionCode: "0",
		CourseCode:   model.FlexString(code),
		CourseName:   model.FlexString(name),
		Instructor:   model.FlexString(instructor),
		LectureTime:  model.FlexString(lectureTime),
		Credits:      "3",
	}
}

func newTestPlanner(t *testing.T, store *memoryStore) (*PlannerService, *CatalogService) {
	t.Helper()

	source := &stubRowSource{rows: []model.RawCourseRow{
		testRow("CS101", "프로그래밍 기초", "월 10:30~12:00", "김철수"),
		testRow("CS202", "자료구조", "월 11:00~12:30", "이영희"),
		testRow("MAS101", "미적분학", "화 09:00~10:30", "박민준"),
	}}
	catalogService := NewCatalogService(source, "2026", "1", 280, zerolog.Nop())
	if err := catalogService.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return NewPlannerService(catalogService, store, zerolog.Nop()), catalogService
}

func sectionID(t *testing.T, catalogService *CatalogService, code string) string {
	t.Helper()
	for _, section := range catalogService.Sections() {
		if section.CourseCode == code {
			return section.ID
		}
	}
	t.Fatalf("no section with code %s", code)
	return ""
}

func TestApplyAddPersistsAndPublishes(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)
	id := sectionID(t, catalogService, "CS101")

	if err := planner.Apply(ctx, "p1", Command{Type: CommandAdd, SectionID: id}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !reflect.DeepEqual(store.selections["p1"], []string{id}) {
		t.Errorf("stored selection = %v, want [%s]", store.selections["p1"], id)
	}
	if store.published != 1 {
		t.Errorf("published %d snapshots, want 1", store.published)
	}
}

func TestApplyAddUnknownSection(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, _ := newTestPlanner(t, store)

	err := planner.Apply(ctx, "p1", Command{Type: CommandAdd, SectionID: "nope"})
	if !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("got %v, want ErrUnknownSection", err)
	}
	if len(store.selections["p1"]) != 0 || store.published != 0 {
		t.Error("failed add must not persist or publish")
	}
}

func TestApplyDuplicateAddIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)
	id := sectionID(t, catalogService, "CS101")

	for i := 0; i < 2; i++ {
		if err := planner.Apply(ctx, "p1", Command{Type: CommandAdd, SectionID: id}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if len(store.selections["p1"]) != 1 {
		t.Errorf("selection = %v, want single id", store.selections["p1"])
	}
	if store.published != 1 {
		t.Errorf("no-op add must not publish, got %d publishes", store.published)
	}
}

func TestApplyRemoveAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)
	id := sectionID(t, catalogService, "CS101")

	if err := planner.Apply(ctx, "p1", Command{Type: CommandRemove, SectionID: id}); err != nil {
		t.Fatalf("remove on empty selection: %v", err)
	}
	if store.published != 0 {
		t.Error("no-op remove must not publish")
	}
}

func TestApplyResetClearsSelection(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)

	for _, code := range []string{"CS101", "MAS101"} {
		if err := planner.Apply(ctx, "p1", Command{Type: CommandAdd, SectionID: sectionID(t, catalogService, code)}); err != nil {
			t.Fatalf("add %s: %v", code, err)
		}
	}
	if err := planner.Apply(ctx, "p1", Command{Type: CommandReset}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := store.selections["p1"]; len(got) != 0 {
		t.Errorf("selection after reset = %v, want empty", got)
	}

	// Resetting again changes nothing and publishes nothing new.
	published := store.published
	if err := planner.Apply(ctx, "p1", Command{Type: CommandReset}); err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if store.published != published {
		t.Error("idempotent reset must not publish")
	}
}

func TestSelectedSectionsStaleIDsDropped(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)
	id := sectionID(t, catalogService, "CS101")

	// A previously stored id that no longer exists in the catalog.
	store.selections["p1"] = []string{id, "OLD101::시간 미정::"}

	selected, _, err := planner.SelectedSections(ctx, "p1")
	if err != nil {
		t.Fatalf("selected: %v", err)
	}
	if len(selected) != 1 || selected[0].ID != id {
		t.Errorf("stale id should be dropped, got %+v", selected)
	}
}

func TestSelectedSectionsCatalogOrder(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)

	// Stored out of order; the returned list follows catalog order.
	store.selections["p1"] = []string{
		sectionID(t, catalogService, "MAS101"),
		sectionID(t, catalogService, "CS101"),
	}

	selected, _, err := planner.SelectedSections(ctx, "p1")
	if err != nil {
		t.Fatalf("selected: %v", err)
	}
	if len(selected) != 2 || selected[0].CourseCode != "CS101" || selected[1].CourseCode != "MAS101" {
		t.Errorf("order = %v", selected)
	}
}

func TestScheduleReportsConflicts(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)

	// CS101 and CS202 overlap on Monday.
	for _, code := range []string{"CS101", "CS202"} {
		if err := planner.Apply(ctx, "p1", Command{Type: CommandAdd, SectionID: sectionID(t, catalogService, code)}); err != nil {
			t.Fatalf("add %s: %v", code, err)
		}
	}

	view, err := planner.Schedule(ctx, "p1")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if view.Status.SelectedCount != 2 || view.Status.ConflictCount != 2 {
		t.Errorf("status = %+v, want 2 selected, 2 conflicted", view.Status)
	}
	if len(view.ConflictIDs) != 2 {
		t.Errorf("conflict ids = %v", view.ConflictIDs)
	}
	if len(view.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(view.Blocks))
	}
	for _, block := range view.Blocks {
		if !block.Conflict || block.Color != nil {
			t.Errorf("conflicted block should be flagged and uncolored: %+v", block)
		}
	}
}

func TestScheduleEmptyPlanner(t *testing.T) {
	ctx := context.Background()
	planner, _ := newTestPlanner(t, newMemoryStore())

	view, err := planner.Schedule(ctx, "p1")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(view.Blocks) != 0 || view.Status.SelectedCount != 0 || view.Status.CatalogTotal != 3 {
		t.Errorf("view = %+v", view)
	}
}

func TestSearchWithHintsMarksOverlaps(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)

	if err := planner.Apply(ctx, "p1", Command{Type: CommandAdd, SectionID: sectionID(t, catalogService, "CS101")}); err != nil {
		t.Fatalf("add: %v", err)
	}

	result, err := planner.SearchWithHints(ctx, "p1", "", true)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	hints := map[string]bool{}
	for _, s := range result.Sections {
		hints[s.CourseCode] = s.WouldOverlap
	}
	if !hints["CS202"] {
		t.Error("CS202 overlaps the selected CS101 and should hint")
	}
	if hints["MAS101"] {
		t.Error("MAS101 is on a free day and should not hint")
	}
	if hints["CS101"] {
		t.Error("the selected section itself should not hint")
	}
}

func TestSearchWithHintsDisabled(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	planner, catalogService := newTestPlanner(t, store)

	if err := planner.Apply(ctx, "p1", Command{Type: CommandAdd, SectionID: sectionID(t, catalogService, "CS101")}); err != nil {
		t.Fatalf("add: %v", err)
	}

	result, err := planner.SearchWithHints(ctx, "p1", "", false)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, s := range result.Sections {
		if s.WouldOverlap {
			t.Errorf("hints disabled but %s carries one", s.CourseCode)
		}
	}
}

func TestApplyStoreErrorPropagates(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.loadErr = errors.New("redis down")
	planner, catalogService := newTestPlanner(t, store)

	err := planner.Apply(ctx, "p1", Command{Type: CommandAdd, SectionID: sectionID(t, catalogService, "CS101")})
	if err == nil || err.Error() != "redis down" {
		t.Fatalf("got %v, want store error", err)
	}
}
