package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/haneulsoft/timetable-backend/internal/model"
	"github.com/haneulsoft/timetable-backend/internal/timetable"
	"github.com/rs/zerolog"
)

// ErrUnknownSection is returned when a mutation references a section id
// that does not exist in the current catalog. The selection itself is
// never modified in that case.
var ErrUnknownSection = errors.New("unknown section id")

// SelectionStore abstracts selection persistence and change fan-out.
// The Redis-backed repository is the production implementation; tests use
// an in-memory one.
type SelectionStore interface {
	Load(ctx context.Context, plannerID string) ([]string, error)
	Save(ctx context.Context, plannerID string, ids []string) error
	PublishSchedule(ctx context.Context, plannerID string, snapshot []byte) error
}

// CommandType enumerates the selection mutations.
type CommandType string

const (
	CommandAdd    CommandType = "add"
	CommandRemove CommandType = "remove"
	CommandReset  CommandType = "reset"
)

// Command is one selection mutation. All mutating entry points funnel
// through PlannerService.Apply so state transitions stay in one place.
type Command struct {
	Type      CommandType
	SectionID string
}

// HintedResult is a capped ranked list with optional would-overlap hints.
type HintedResult struct {
	Sections []model.SectionWithHint
	Total    int
	Shown    int
	Overflow bool
}

// PlannerService manages per-planner selections and everything derived
// from them: conflicts, overlap hints and the weekly grid. The selection
// is the single source of truth; conflict sets and layouts are pure
// functions of it, recomputed on every call.
type PlannerService struct {
	catalog *CatalogService
	store   SelectionStore
	log     zerolog.Logger
}

func NewPlannerService(catalog *CatalogService, store SelectionStore, log zerolog.Logger) *PlannerService {
	return &PlannerService{
		catalog: catalog,
		store:   store,
		log:     log.With().Str("component", "planner_service").Logger(),
	}
}

// selectedIDs loads the stored selection and silently drops ids that no
// longer exist in the catalog (stale-selection tolerance).
func (s *PlannerService) selectedIDs(ctx context.Context, plannerID string) ([]string, error) {
	stored, err := s.store.Load(ctx, plannerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(stored))
	for _, id := range stored {
		if s.catalog.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Apply executes one selection command. Commands that do not change the
// selection (removing an absent id, resetting an empty selection, adding
// a duplicate) are successful no-ops. Every actual change is persisted
// immediately and a fresh schedule snapshot is published.
func (s *PlannerService) Apply(ctx context.Context, plannerID string, cmd Command) error {
	ids, err := s.selectedIDs(ctx, plannerID)
	if err != nil {
		return err
	}

	next, changed, err := reduce(ids, cmd, s.catalog)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := s.store.Save(ctx, plannerID, next); err != nil {
		return err
	}
	s.publishSnapshot(ctx, plannerID)
	return nil
}

// reduce is the pure state transition: (selection, command) -> selection.
func reduce(ids []string, cmd Command, catalog *CatalogService) ([]string, bool, error) {
	switch cmd.Type {
	case CommandAdd:
		if !catalog.Has(cmd.SectionID) {
			return nil, false, ErrUnknownSection
		}
		for _, id := range ids {
			if id == cmd.SectionID {
				return ids, false, nil
			}
		}
		return append(ids, cmd.SectionID), true, nil

	case CommandRemove:
		next := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != cmd.SectionID {
				next = append(next, id)
			}
		}
		return next, len(next) != len(ids), nil

	case CommandReset:
		return []string{}, len(ids) > 0, nil

	default:
		return nil, false, errors.New("unknown command type")
	}
}

// SelectedSections returns the selected sections in catalog order along
// with the conflict id set.
func (s *PlannerService) SelectedSections(ctx context.Context, plannerID string) ([]model.Section, map[string]bool, error) {
	ids, err := s.selectedIDs(ctx, plannerID)
	if err != nil {
		return nil, nil, err
	}

	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}

	// Walking the canonically sorted catalog keeps the selected list in
	// course-code order without re-sorting.
	selected := make([]model.Section, 0, len(ids))
	for _, section := range s.catalog.Sections() {
		if member[section.ID] {
			selected = append(selected, section)
		}
	}

	return selected, timetable.ConflictIDs(selected), nil
}

// Schedule renders the planner's full weekly view: placed grid blocks,
// conflicted ids and the status summary.
func (s *PlannerService) Schedule(ctx context.Context, plannerID string) (model.ScheduleView, error) {
	selected, conflicts, err := s.SelectedSections(ctx, plannerID)
	if err != nil {
		return model.ScheduleView{}, err
	}

	conflictIDs := make([]string, 0, len(conflicts))
	for _, section := range selected {
		if conflicts[section.ID] {
			conflictIDs = append(conflictIDs, section.ID)
		}
	}

	return model.ScheduleView{
		Blocks:      timetable.Layout(selected, conflicts),
		ConflictIDs: conflictIDs,
		Status: model.StatusSummary{
			CatalogTotal:  s.catalog.Size(),
			SelectedCount: len(selected),
			ConflictCount: len(conflictIDs),
		},
	}, nil
}

// SearchWithHints ranks the catalog for a planner and, when hints are
// requested, marks each surfaced section that would overlap a currently
// selected session if added.
func (s *PlannerService) SearchWithHints(ctx context.Context, plannerID, query string, hints bool) (HintedResult, error) {
	ranked := s.catalog.Search(query)

	result := HintedResult{
		Sections: make([]model.SectionWithHint, len(ranked.Sections)),
		Total:    ranked.Total,
		Shown:    ranked.Shown,
		Overflow: ranked.Overflow,
	}
	for i, section := range ranked.Sections {
		result.Sections[i] = model.SectionWithHint{Section: section}
	}

	if !hints {
		return result, nil
	}

	selected, _, err := s.SelectedSections(ctx, plannerID)
	if err != nil {
		return HintedResult{}, err
	}
	if len(selected) == 0 {
		return result, nil
	}

	index := timetable.BuildSelectedIndex(selected)
	for i := range result.Sections {
		result.Sections[i].WouldOverlap = index.WouldOverlap(result.Sections[i].Section)
	}
	return result, nil
}

// publishSnapshot pushes the post-mutation schedule to the planner's
// channel. Streams resync on connect, so a failed publish is only logged.
func (s *PlannerService) publishSnapshot(ctx context.Context, plannerID string) {
	view, err := s.Schedule(ctx, plannerID)
	if err != nil {
		s.log.Error().Err(err).Str("planner_id", plannerID).Msg("Snapshot build failed")
		return
	}
	payload, err := json.Marshal(view)
	if err != nil {
		s.log.Error().Err(err).Str("planner_id", plannerID).Msg("Snapshot encode failed")
		return
	}
	if err := s.store.PublishSchedule(ctx, plannerID, payload); err != nil {
		s.log.Warn().Err(err).Str("planner_id", plannerID).Msg("Snapshot publish failed")
	}
}
