package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/haneulsoft/timetable-backend/internal/catalog"
	"github.com/haneulsoft/timetable-backend/internal/model"
	"github.com/haneulsoft/timetable-backend/internal/timetable"
	"github.com/rs/zerolog"
)

// CatalogService owns the in-memory section catalog for the configured
// term. Sections are immutable once built; Reload swaps the whole set
// atomically, so readers always see a consistent catalog.
type CatalogService struct {
	source    catalog.RowSource
	year      string
	termCode  string
	listLimit int
	log       zerolog.Logger

	mu       sync.RWMutex
	sections []model.Section
	byID     map[string]model.Section
}

// SearchResult is a ranked (or canonical, for empty queries) slice of
// sections capped at the display limit. Total counts every qualifying
// section; Overflow reports that the cap truncated the visible list.
type SearchResult struct {
	Sections []model.Section
	Total    int
	Shown    int
	Overflow bool
}

func NewCatalogService(source catalog.RowSource, year, termCode string, listLimit int, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		source:    source,
		year:      year,
		termCode:  termCode,
		listLimit: listLimit,
		log:       log.With().Str("component", "catalog_service").Logger(),
		byID:      make(map[string]model.Section),
	}
}

// Reload fetches the raw rows from the source and rebuilds the section
// catalog. Called once at startup (failure there is fatal to the process)
// and from the refresh worker afterwards.
func (s *CatalogService) Reload(ctx context.Context) error {
	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog rows: %w", err)
	}

	sections := catalog.BuildSections(rows, s.year, s.termCode)
	byID := make(map[string]model.Section, len(sections))
	for _, section := range sections {
		byID[section.ID] = section
	}

	s.mu.Lock()
	s.sections = sections
	s.byID = byID
	s.mu.Unlock()

	s.log.Info().
		Int("rows", len(rows)).
		Int("sections", len(sections)).
		Str("year", s.year).
		Str("term", s.termCode).
		Msg("Catalog built")
	return nil
}

// Sections returns the full catalog in canonical order. The slice is
// shared, never mutated.
func (s *CatalogService) Sections() []model.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sections
}

// Get looks a section up by id.
func (s *CatalogService) Get(id string) (model.Section, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	section, ok := s.byID[id]
	return section, ok
}

// Has reports whether the id exists in the current catalog.
func (s *CatalogService) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Size returns the catalog section count.
func (s *CatalogService) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sections)
}

// Year returns the configured catalog year.
func (s *CatalogService) Year() string { return s.year }

// TermCode returns the configured term code.
func (s *CatalogService) TermCode() string { return s.termCode }

// Search ranks the catalog against a query and applies the display cap.
// The cap limits what is surfaced, never how results rank.
func (s *CatalogService) Search(query string) SearchResult {
	ranked := timetable.Rank(s.Sections(), query)

	result := SearchResult{Total: len(ranked)}
	if s.listLimit > 0 && len(ranked) > s.listLimit {
		result.Sections = ranked[:s.listLimit]
		result.Overflow = true
	} else {
		result.Sections = ranked
	}
	result.Shown = len(result.Sections)
	return result
}
