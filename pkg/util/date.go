package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// missingMarkers are cells that read as an absent value rather than text.
var missingMarkers = map[string]struct{}{
	"nan": {}, "-nan": {}, "na": {}, "n/a": {}, "null": {}, "none": {}, "<na>": {},
}

// IsMissing reports whether a cell is empty or holds a missing-value marker.
func IsMissing(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return true
	}
	_, ok := missingMarkers[s]
	return ok
}

// IsNumeric reports whether s parses as a finite float (scientific notation included).
func IsNumeric(s string) bool {
	_, ok := ParseNumber(s)
	return ok
}

// maxEpochMillis bounds epochs to years before 10000.
const maxEpochMillis = 253402300799999

// ParseEpochMillis parses a millisecond epoch, e.g. "1730000000000" or "1.73E+12".
// Non-finite and out-of-range values fail.
func ParseEpochMillis(s string) (time.Time, bool) {
	f, ok := ParseNumber(s)
	if !ok || f < -maxEpochMillis || f > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(f)).UTC(), true
}

// day-first layouts, most specific first
var dayFirstLayouts = []string{
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
}

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// ParseDayFirst parses dates in mixed formats, reading ambiguous dd-mm forms day first.
// Year-first strings stay year-first. A bare integer is treated as unix seconds.
func ParseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > 4 && (s[4] == '-' || s[4] == '/') {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// DateKey drops the clock part, keeping the wall-clock calendar day.
func DateKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
