// Package parse extracts structured entities (money amounts, row references,
// percentages, dates, client names) out of raw conversational text. All
// extractors are stateless and case-insensitive; on failure they report
// !ok rather than returning an error.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var moneyPattern = regexp.MustCompile(`(?i)\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*([km])?\b`)

// Money finds the first money amount in text. Accepts an optional currency
// symbol, comma grouping, and a trailing k/m suffix (×1e3 / ×1e6). A number
// carrying a $ or suffix wins over a bare number, and a bare number inside a
// row reference is never an amount, so "row 2 to $5k" parses as 5000 and
// "row 2 budget to 300000" as 300000, not 2.
func Money(text string) (float64, bool) {
	matches := moneyPattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return 0, false
	}
	rowSpans := rowPattern.FindAllStringIndex(text, -1)

	var pick []int
	for _, m := range matches {
		if strings.Contains(text[m[0]:m[1]], "$") || m[4] != -1 {
			pick = m
			break
		}
		if pick == nil && !insideSpan(rowSpans, m[2]) {
			pick = m
		}
	}
	if pick == nil {
		return 0, false
	}

	raw := strings.ReplaceAll(text[pick[2]:pick[3]], ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	suffix := ""
	if pick[4] != -1 {
		suffix = strings.ToLower(text[pick[4]:pick[5]])
	}
	switch suffix {
	case "k":
		amount *= 1_000
	case "m":
		amount *= 1_000_000
	}
	return amount, true
}

func insideSpan(spans [][]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}

// MoneyOrDefault parses a money amount, substituting fallback when none is
// found. Extraction failures are silent by design.
func MoneyOrDefault(text string, fallback float64) float64 {
	if amount, ok := Money(text); ok {
		return amount
	}
	return fallback
}

var percentPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(?:%|percent)`)

// Percent finds the first percentage in text, returned as a fraction
// ("20%" → 0.20).
func Percent(text string) (float64, bool) {
	m := percentPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}
