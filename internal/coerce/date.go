package coerce

import (
	"strconv"
	"strings"
	"time"
)

const gvizDatePrefix = "Date("

// layouts carrying their own zone or defined as UTC (date-only ISO).
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
}

var utcLayouts = []string{
	"2006-01-02",
	"2006-01",
}

// layouts without a zone, read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.ANSIC,
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// Date parses a cell into an instant. Accepted forms, tried in order:
//
//	time.Time or *time.Time           returned when non-zero
//	Date(2026,1,15,19,26,0)           gviz literal, zero-based month, in loc
//	15/02/2026 19:26:00               day/month/year with optional time
//	2026-02-15 19:26                  space separated ISO date and time
//	anything time.Parse understands   RFC3339, ISO date, RFC1123...
//
// A value containing both a space and a dash only gets the ISO date and time
// attempt, so "Mon, 02 Jan 2006 15:04:05 -0700" is rejected.
//
// Date-only ISO strings are UTC midnight; zone-less date-times are read in
// loc (UTC when loc is nil). Unrecognised or out-of-range values give nil.
func Date(v any, loc *time.Location) *time.Time {
	if loc == nil {
		loc = time.UTC
	}
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return &x
	case *time.Time:
		if x == nil || x.IsZero() {
			return nil
		}
		t := *x
		return &t
	case string:
		return parseDateString(x, loc)
	default:
		return nil
	}
}

func parseDateString(s string, loc *time.Location) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, gvizDatePrefix) {
		return parseGvizDate(s, loc)
	}

	if strings.Contains(s, "/") {
		return parseDayMonthYear(s, loc)
	}

	// Anything with a space and a dash is treated as ISO date and time only.
	if strings.Contains(s, " ") && strings.Contains(s, "-") {
		return parseLayouts(strings.Replace(s, " ", "T", 1), loc)
	}

	return parseLayouts(s, loc)
}

// parseGvizDate handles Date(Y,M,D[,h[,m[,s[,ms]]]]).
func parseGvizDate(s string, loc *time.Location) *time.Time {
	inner := strings.TrimPrefix(s, gvizDatePrefix)
	inner = strings.TrimSuffix(inner, ")")
	raw := strings.Split(inner, ",")
	if len(raw) < 3 || len(raw) > 7 {
		return nil
	}

	parts := make([]int, 7)
	for i, p := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil
		}
		parts[i] = n
	}

	t := time.Date(parts[0], time.Month(parts[1]+1), parts[2], parts[3], parts[4], parts[5], parts[6]*int(time.Millisecond), loc)
	return &t
}

// parseDayMonthYear handles DD/MM/YYYY with an optional time after the first
// space. The parts are rebuilt into an ISO string before parsing.
func parseDayMonthYear(s string, loc *time.Location) *time.Time {
	fields := strings.Split(s, " ")
	datePart := fields[0]
	timePart := ""
	if len(fields) > 1 {
		timePart = fields[1]
	}

	dmy := strings.Split(datePart, "/")
	if len(dmy) < 3 {
		return nil
	}
	day, month, year := dmy[0], dmy[1], dmy[2]
	if day == "" || month == "" || year == "" {
		return nil
	}

	iso := year + "-" + padTwo(month) + "-" + padTwo(day)
	if timePart != "" {
		iso += "T" + timePart
	}
	return parseLayouts(iso, loc)
}

func parseLayouts(s string, loc *time.Location) *time.Time {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	for _, layout := range utcLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	return nil
}

func padTwo(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}
