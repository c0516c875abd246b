package timetable

import (
	"sort"
	"strings"

	"github.com/haneulsoft/timetable-backend/internal/model"
)

// Score tuning. A substring hit beats any subsequence hit; earlier match
// positions and tighter field lengths push a hit toward the top.
const (
	substringBase    = 540
	substringMaxPos  = 240
	substringMaxLen  = 140
	subsequenceBase  = 290
	subsequenceMaxGp = 190
	subsequenceMaxLn = 90

	// goodEnough stops scanning further fields once a token already has
	// a near-maximal hit.
	goodEnough = 500
)

// Rank filters and orders sections against a free-text query. The query
// is normalized like the search fields and split into tokens; every token
// must score against at least one field or the section is excluded
// entirely. Qualifying sections are ordered by descending total score;
// ties keep the canonical catalog order of the input. An empty query
// passes the input through unchanged.
func Rank(sections []model.Section, query string) []model.Section {
	normalized := NormalizeForSearch(query)
	if normalized == "" {
		return sections
	}
	tokens := strings.Fields(normalized)

	type scored struct {
		section model.Section
		score   int
	}
	var matches []scored
	for _, section := range sections {
		if score := scoreSection(section, tokens); score > 0 {
			matches = append(matches, scored{section, score})
		}
	}

	// Stable sort: equal scores retain the canonical ordering the
	// catalog was built with.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	ranked := make([]model.Section, len(matches))
	for i, m := range matches {
		ranked[i] = m.section
	}
	return ranked
}

// scoreSection sums the best per-field score of every token. A token that
// matches no field at all disqualifies the whole section.
func scoreSection(section model.Section, tokens []string) int {
	total := 0
	for _, token := range tokens {
		best := 0
		for _, field := range section.SearchFields {
			if score := scoreToken(token, field); score > best {
				best = score
			}
			if best >= goodEnough {
				break
			}
		}
		if best == 0 {
			return 0
		}
		total += best
	}
	return total
}

// scoreToken rates one token against one normalized field. Substring hits
// score on match position and length fit; otherwise tokens of two or more
// characters fall back to a gap-penalized subsequence match. All position
// and length arithmetic is in runes, not bytes.
func scoreToken(token, field string) int {
	if token == "" || field == "" {
		return 0
	}

	fieldRunes := []rune(field)
	tokenRunes := []rune(token)
	lengthGap := len(fieldRunes) - len(tokenRunes)
	if lengthGap < 0 {
		lengthGap = 0
	}

	if byteIdx := strings.Index(field, token); byteIdx >= 0 {
		runeIdx := len([]rune(field[:byteIdx]))
		return substringBase - min(substringMaxPos, runeIdx*4) - min(substringMaxLen, lengthGap)
	}

	if len(tokenRunes) < 2 {
		return 0
	}

	gap := subsequenceGap(tokenRunes, fieldRunes)
	if gap < 0 {
		return 0
	}

	score := subsequenceBase - min(subsequenceMaxGp, gap*3) - min(subsequenceMaxLn, lengthGap)
	if score < 0 {
		return 0
	}
	return score
}

// subsequenceGap realizes token as a subsequence of field with a greedy
// left-to-right first-match scan and returns the total gap between
// consecutive matched positions, or -1 when token is not a subsequence.
// Greedy is intentionally not global-optimal.
func subsequenceGap(token, field []rune) int {
	tokenIdx := 0
	lastMatch := -1
	gapTotal := 0

	for i := 0; i < len(field) && tokenIdx < len(token); i++ {
		if field[i] != token[tokenIdx] {
			continue
		}
		if lastMatch >= 0 {
			gapTotal += i - lastMatch - 1
		}
		lastMatch = i
		tokenIdx++
	}

	if tokenIdx != len(token) {
		return -1
	}
	return gapTotal
}
