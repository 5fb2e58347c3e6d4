package usghole

import (
	"sort"
	"strings"
)

// Normalize turns the combined raw lines of all sources into one deterministic
// document: leading/trailing whitespace trimmed, blank lines and comments
// dropped, the rest sorted and deduplicated. Empty input yields an empty
// document. Normalizing an already normalized document is a no-op.
func Normalize(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}
