package model

// BlockColor is one palette entry for a placed timetable block.
type BlockColor struct {
	Background string `json:"bg"`
	Border     string `json:"border"`
}

// PlacedBlock is one session of a selected section mapped onto the weekly
// grid. StartSlot is inclusive, EndSlot exclusive; a block always spans at
// least one slot. Conflicted blocks carry no color; clients render them
// with the conflict treatment instead.
type PlacedBlock struct {
	SectionID  string      `json:"section_id"`
	CourseCode string      `json:"course_code"`
	CourseName string      `json:"course_name"`
	Day        Weekday     `json:"day"`
	StartSlot  int         `json:"start_slot"`
	EndSlot    int         `json:"end_slot"`
	Start      int         `json:"start"`
	End        int         `json:"end"`
	TimeLabel  string      `json:"time_label"`
	Conflict   bool        `json:"conflict"`
	Color      *BlockColor `json:"color,omitempty"`
}

// StatusSummary is the status line of the planner: catalog size, current
// selection size and how many selected sections are in conflict.
type StatusSummary struct {
	CatalogTotal  int `json:"catalog_total"`
	SelectedCount int `json:"selected_count"`
	ConflictCount int `json:"conflict_count"`
}

// ScheduleView is the full rendered weekly schedule for one planner.
type ScheduleView struct {
	Blocks      []PlacedBlock `json:"blocks"`
	ConflictIDs []string      `json:"conflict_ids"`
	Status      StatusSummary `json:"status"`
}

// SectionWithHint wraps a ranked section with the would-overlap hint:
// true when adding the section would overlap a currently selected session.
type SectionWithHint struct {
	Section
	WouldOverlap bool `json:"would_overlap"`
}

// AddSelectionRequest is the payload for adding a section to a planner.
type AddSelectionRequest struct {
	SectionID string `json:"section_id" binding:"required,min=1,max=300"`
}
