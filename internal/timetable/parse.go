package timetable

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/haneulsoft/timetable-backend/internal/model"
)

// sessionPattern matches one day+time-range token inside a free-text
// lecture-time string, e.g. "월 10:30~12:00" or "Tue13:00 ~ 14:15".
// Hours tolerate 00-29 because the feed occasionally encodes late slots
// past midnight that way.
var sessionPattern = regexp.MustCompile(
	`(Mon|Tue|Wed|Thu|Fri|Sat|Sun|월|화|수|목|금|토|일)\s*([0-2][0-9]:[0-5][0-9])\s*~\s*([0-2][0-9]:[0-5][0-9])`)

// ParseLectureTimes extracts every well-formed weekly session from a raw
// lecture-time string. The feed is noisy free text, so parsing is
// best-effort: malformed or partial tokens are skipped, exact duplicate
// (day, start, end) triples collapse, and the result is sorted by day
// then start time. An empty input yields no sessions.
func ParseLectureTimes(raw string) []model.Session {
	if raw == "" {
		return nil
	}

	source := strings.ReplaceAll(raw, "\r", "\n")

	var sessions []model.Session
	seen := make(map[model.Session]bool)

	for _, match := range sessionPattern.FindAllStringSubmatch(source, -1) {
		day, ok := model.ParseWeekday(match[1])
		if !ok {
			continue
		}
		start := toMinutes(match[2])
		end := toMinutes(match[3])
		if end <= start {
			continue
		}

		session := model.Session{Day: day, Start: start, End: end}
		if seen[session] {
			continue
		}
		seen[session] = true
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Day != sessions[j].Day {
			return sessions[i].Day < sessions[j].Day
		}
		return sessions[i].Start < sessions[j].Start
	})

	return sessions
}

// toMinutes converts an "HH:MM" token to minutes since midnight. The
// pattern guarantees both parts are digits.
func toMinutes(hhmm string) int {
	hh, _ := strconv.Atoi(hhmm[:2])
	mm, _ := strconv.Atoi(hhmm[3:])
	return hh*60 + mm
}
