package parse

import (
	"regexp"
	"strings"
)

var forClientPattern = regexp.MustCompile(`(?i)\bfor\s+([A-Za-z][A-Za-z0-9&'._ -]*?)(?:\s*[($]|\s+with\b|\s+at\b|[,.!?]|$)`)

// stopwords are skipped by the positional fallback when hunting for a
// client-name token.
var clientStopwords = map[string]bool{
	"create": true, "build": true, "make": true, "start": true, "new": true,
	"a": true, "an": true, "the": true, "plan": true, "media": true,
	"campaign": true, "budget": true, "please": true, "lets": true, "let's": true,
	"with": true, "of": true, "my": true, "me": true, "us": true,
}

// ClientName pulls a client name out of a plan-creation sentence. It prefers
// the "for <name>" pattern and falls back to the first capitalized token that
// is not a command word. Returns ok=false when nothing plausible is found.
func ClientName(text string) (string, bool) {
	if m := forClientPattern.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if name != "" {
			return name, true
		}
	}

	for _, word := range strings.Fields(text) {
		trimmed := strings.Trim(word, "($,.!?)\"'")
		if trimmed == "" || clientStopwords[strings.ToLower(trimmed)] {
			continue
		}
		if trimmed[0] >= 'A' && trimmed[0] <= 'Z' {
			return trimmed, true
		}
	}
	return "", false
}
