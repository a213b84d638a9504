package parse

import (
	"regexp"
	"strings"
)

var addVerbPattern = regexp.MustCompile(`(?i)^\s*(?:please\s+)?(?:can\s+you\s+|could\s+you\s+)?(?:add|include|insert|put\s+in)\s+`)

var trailingNoise = regexp.MustCompile(`(?i)\s+(?:to|into|in)\s+the\s+plan\b.*$|\s+for\s+\$?[0-9].*$|\s*\$[0-9].*$|[,.!?]+\s*$`)

// VendorToken strips the add-command verb and trailing noise from an
// add-placement sentence, leaving the free-text vendor token
// ("add ESPN SportsCenter to the plan" → "ESPN SportsCenter").
func VendorToken(text string) (string, bool) {
	if !addVerbPattern.MatchString(text) {
		return "", false
	}
	rest := addVerbPattern.ReplaceAllString(text, "")
	rest = trailingNoise.ReplaceAllString(rest, "")
	rest = strings.TrimSpace(rest)

	// Drop a leading article and filler nouns ("add a spot on ESPN").
	for _, prefix := range []string{"a ", "an ", "some "} {
		if strings.HasPrefix(strings.ToLower(rest), prefix) {
			rest = strings.TrimSpace(rest[len(prefix):])
		}
	}
	for _, prefix := range []string{"spot on ", "placement on ", "buy on ", "ad on "} {
		if strings.HasPrefix(strings.ToLower(rest), prefix) {
			rest = strings.TrimSpace(rest[len(prefix):])
		}
	}

	if rest == "" {
		return "", false
	}
	return rest, true
}
