package parse

import (
	"regexp"
	"strconv"
)

var rowPattern = regexp.MustCompile(`(?i)\b(?:row|line|item|placement)\s*#?\s*([0-9]+)\b`)

// RowRef finds a 1-based row reference ("row 2", "line #3", "item 4").
// The number is returned as typed; range checking is the caller's job.
func RowRef(text string) (int, bool) {
	m := rowPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
