package timetable

import "github.com/haneulsoft/timetable-backend/internal/model"

// Grid geometry: 15-minute slots over a fixed 08:00-23:00 daily window.
const (
	SlotMinutes = 15
	WindowStart = 8 * 60
	WindowEnd   = 23 * 60
	SlotCount   = (WindowEnd - WindowStart) / SlotMinutes
)

// palette is the fixed block color set. Assignment hashes the section id,
// so a section keeps its color across reloads; collisions are fine.
var palette = []model.BlockColor{
	{Background: "rgba(64, 145, 108, 0.82)", Border: "rgba(37, 89, 67, 0.88)"},
	{Background: "rgba(52, 104, 192, 0.82)", Border: "rgba(34, 67, 123, 0.88)"},
	{Background: "rgba(208, 113, 54, 0.82)", Border: "rgba(138, 75, 35, 0.88)"},
	{Background: "rgba(86, 124, 78, 0.82)", Border: "rgba(57, 81, 52, 0.88)"},
	{Background: "rgba(0, 126, 167, 0.82)", Border: "rgba(2, 77, 101, 0.88)"},
	{Background: "rgba(186, 104, 67, 0.82)", Border: "rgba(118, 65, 42, 0.88)"},
	{Background: "rgba(41, 128, 185, 0.82)", Border: "rgba(28, 84, 120, 0.88)"},
	{Background: "rgba(73, 131, 121, 0.82)", Border: "rgba(46, 84, 77, 0.88)"},
}

// PaletteIndex hashes a section id into the palette. The hash runs in
// 32-bit arithmetic (h*31 + rune) so the assignment is stable regardless
// of platform word size.
func PaletteIndex(id string) int {
	var h int32
	for _, r := range id {
		h = h*31 + r
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(len(palette)))
}

// ColorFor returns the palette entry assigned to a section id.
func ColorFor(id string) model.BlockColor {
	return palette[PaletteIndex(id)]
}

// Layout places every session of the selected sections onto the weekly
// grid. Sessions fully outside the visible window are dropped; partial
// ones are clipped to the window. StartSlot floors and EndSlot ceils to
// slot boundaries, with a minimum span of one slot. Conflicted sections
// are flagged instead of colored.
func Layout(selected []model.Section, conflicts map[string]bool) []model.PlacedBlock {
	blocks := make([]model.PlacedBlock, 0, len(selected))

	for _, section := range selected {
		conflicted := conflicts[section.ID]
		for _, session := range section.Sessions {
			if !session.Day.Valid() {
				continue
			}

			start := max(session.Start, WindowStart)
			end := min(session.End, WindowEnd)
			if end <= start {
				continue
			}

			startSlot := (start - WindowStart) / SlotMinutes
			endSlot := (end - WindowStart + SlotMinutes - 1) / SlotMinutes
			if endSlot <= startSlot {
				endSlot = startSlot + 1
			}

			block := model.PlacedBlock{
				SectionID:  section.ID,
				CourseCode: section.CourseCode,
				CourseName: section.CourseName,
				Day:        session.Day,
				StartSlot:  startSlot,
				EndSlot:    endSlot,
				Start:      start,
				End:        end,
				TimeLabel:  model.FormatMinutes(start) + "-" + model.FormatMinutes(end),
				Conflict:   conflicted,
			}
			if !conflicted {
				color := ColorFor(section.ID)
				block.Color = &color
			}
			blocks = append(blocks, block)
		}
	}

	return blocks
}
