// Package catalog turns raw scraped course rows into the immutable,
// deduplicated, canonically ordered section list the rest of the service
// works with.
package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/haneulsoft/timetable-backend/internal/model"
	"github.com/haneulsoft/timetable-backend/internal/timetable"
)

// Placeholder display values for blank feed fields, per field.
const (
	placeholderInstructor = "미정"
	placeholderDepartment = "미분류"
	placeholderCategory   = "구분 미정"
	placeholderTime       = "시간 미정"
	placeholderClassroom  = "강의실 미정"
	placeholderDelivery   = "수업형태 미정"
)

// undergraduateDivisionCode and undergraduateDivisionName are the two ways
// the feed marks an undergraduate row; either one qualifies.
const (
	undergraduateDivisionCode = "0"
	undergraduateDivisionName = "학사과정"
)

// BuildSections filters raw rows to the given year/term undergraduate
// offerings and builds the section list. Rows without a course code or
// name after normalization are dropped; rows collapsing to an already
// seen id are dropped silently (first seen wins). The result is sorted in
// canonical catalog order.
func BuildSections(rows []model.RawCourseRow, year, termCode string) []model.Section {
	byID := make(map[string]bool)
	var sections []model.Section

	for _, row := range rows {
		if strings.TrimSpace(row.Year.String()) != year ||
			strings.TrimSpace(row.TermCode.String()) != termCode ||
			!isUndergraduate(row) {
			continue
		}

		code := timetable.NormalizeSpace(row.CourseCode.String())
		name := timetable.NormalizeSpace(row.CourseName.String())
		if code == "" || name == "" {
			continue
		}

		lectureTime := normalizeLectureTime(row.LectureTime.String())
		instructor := timetable.NormalizeSpace(row.Instructor.String())
		id := code + "::" + lectureTime + "::" + instructor

		if byID[id] {
			continue
		}
		byID[id] = true

		section := model.Section{
			ID:           id,
			CourseCode:   code,
			CourseName:   name,
			Instructor:   defaultIfBlank(instructor, placeholderInstructor),
			Department:   defaultIfBlank(timetable.NormalizeSpace(row.Department.String()), placeholderDepartment),
			Category:     defaultIfBlank(timetable.NormalizeSpace(row.Category.String()), placeholderCategory),
			Credits:      parseCredits(row.Credits.String()),
			LectureTime:  lectureTime,
			Classroom:    defaultIfBlank(timetable.NormalizeSpace(row.Classroom.String()), placeholderClassroom),
			DeliveryMode: defaultIfBlank(timetable.NormalizeSpace(row.DeliveryMode.String()), placeholderDelivery),
			Capacity:     parseCapacity(row.Capacity.String()),
			Enrollment:   parseEnrollment(row.Enrollment.String()),
			Sessions:     timetable.ParseLectureTimes(row.LectureTime.String()),
		}
		section.SeatInfo = seatInfo(section)
		section.SearchFields = searchFields(section)

		sections = append(sections, section)
	}

	SortCanonical(sections)
	return sections
}

func isUndergraduate(row model.RawCourseRow) bool {
	code := strings.TrimSpace(row.DivisionCode.String())
	name := timetable.NormalizeSpace(row.DivisionName.String())
	return code == undergraduateDivisionCode || name == undergraduateDivisionName
}

func normalizeLectureTime(value string) string {
	return defaultIfBlank(timetable.NormalizeSpace(value), placeholderTime)
}

func defaultIfBlank(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// seatInfo renders the human-readable seat line: capacity (or unknown),
// enrollment, and remaining seats when capacity is known.
func seatInfo(section model.Section) string {
	capacityDisplay := "미정"
	if section.Capacity != nil {
		capacityDisplay = strconv.Itoa(*section.Capacity)
	}
	info := fmt.Sprintf("정원 %s / 수강 %d", capacityDisplay, section.Enrollment)
	if section.Capacity != nil {
		info += fmt.Sprintf(" / 여석 %d", *section.Capacity-section.Enrollment)
	}
	return info
}

// searchFields derives the normalized haystacks the ranker scores
// against, one per display field, dropping fields that normalize away.
func searchFields(section model.Section) []string {
	capacityDisplay := "미정"
	if section.Capacity != nil {
		capacityDisplay = strconv.Itoa(*section.Capacity)
	}

	raw := []string{
		section.CourseCode,
		section.CourseName,
		section.Instructor,
		section.Department,
		section.Category,
		section.LectureTime,
		section.Classroom,
		section.DeliveryMode,
		section.SeatInfo,
		strconv.Itoa(section.Enrollment),
		capacityDisplay,
	}

	fields := make([]string, 0, len(raw))
	for _, value := range raw {
		if normalized := timetable.NormalizeForSearch(value); normalized != "" {
			fields = append(fields, normalized)
		}
	}
	return fields
}

// parseCredits coerces the credit field; anything non-numeric becomes 0.
func parseCredits(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

// parseCapacity coerces the enrollment cap; blank or non-numeric means
// the cap is unknown, not zero.
func parseCapacity(value string) *int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	capacity := int(parsed)
	return &capacity
}

// parseEnrollment coerces the enrolled count; negative or non-numeric
// values become 0.
func parseEnrollment(value string) int {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
		return 0
	}
	return int(parsed)
}
