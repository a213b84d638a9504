package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	namedDatePattern   = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+([0-9]{1,2})(?:st|nd|rd|th)?(?:,?\s*([0-9]{4}))?`)
	numericDatePattern = regexp.MustCompile(`\b([0-9]{1,2})/([0-9]{1,2})(?:/([0-9]{2,4}))?\b`)
)

// Dates extracts up to two dates from text, in order of appearance. Month
// names ("Jan 5", "march 3rd 2026") and numeric forms ("3/15", "3/15/2026")
// are accepted; a missing year defaults to the reference year.
func Dates(text string, ref time.Time) []time.Time {
	type hit struct {
		pos int
		t   time.Time
	}
	var hits []hit

	for _, idx := range namedDatePattern.FindAllStringSubmatchIndex(text, -1) {
		m := namedDatePattern.FindStringSubmatch(text[idx[0]:idx[1]])
		month := months[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		year := ref.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if day >= 1 && day <= 31 {
			hits = append(hits, hit{idx[0], time.Date(year, month, day, 0, 0, 0, 0, time.UTC)})
		}
	}

	for _, idx := range numericDatePattern.FindAllStringSubmatchIndex(text, -1) {
		m := numericDatePattern.FindStringSubmatch(text[idx[0]:idx[1]])
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := ref.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			hits = append(hits, hit{idx[0], time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)})
		}
	}

	// Order by position in the text so "from X to Y" keeps start before end.
	for i := 0; i < len(hits); i++ {
		for j := i + 1; j < len(hits); j++ {
			if hits[j].pos < hits[i].pos {
				hits[i], hits[j] = hits[j], hits[i]
			}
		}
	}

	out := make([]time.Time, 0, 2)
	for _, h := range hits {
		out = append(out, h.t)
		if len(out) == 2 {
			break
		}
	}
	return out
}

// DateRange extracts a start and end date. With a single date found, only
// the start moves; with none, ok is false.
func DateRange(text string, ref time.Time) (start, end time.Time, ok bool) {
	ds := Dates(text, ref)
	switch len(ds) {
	case 0:
		return time.Time{}, time.Time{}, false
	case 1:
		return ds[0], time.Time{}, true
	default:
		return ds[0], ds[1], true
	}
}
