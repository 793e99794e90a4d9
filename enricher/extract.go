package enricher

import (
	"regexp"
	"strings"
)

var sentinelBlock = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(Sentinel) + `(.*?)` + regexp.QuoteMeta(Sentinel))

// Extract returns the trimmed text between the first two Sentinel markers.
// ok is false when the pair is not present.
func Extract(text string) (block string, ok bool) {
	m := sentinelBlock.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
