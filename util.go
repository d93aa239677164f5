package lexgen

import (
	"fmt"
	"sort"

	sliceutil "github.com/projectdiscovery/utils/slice"
)

// escapeRune renders a codepoint for debug output: visible ASCII ('!'
// to '~') literally, other bytes as \xNN and anything above 0xff as
// \x{HHHH}.
func escapeRune(c rune) string {
	if c <= 0xff {
		if c >= '!' && c <= '~' {
			return string(c)
		}
		return fmt.Sprintf("\\x%02x", c)
	}
	return fmt.Sprintf("\\x{%x}", c)
}

// sortDedupe sorts a state set in place and removes duplicates.
func sortDedupe(states []int) []int {
	sort.Ints(states)
	return sliceutil.Dedupe(states)
}

// mergeStateSets returns the sorted, deduplicated union of two state sets.
func mergeStateSets(a, b []int) []int {
	merged := make([]int, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return sortDedupe(merged)
}
