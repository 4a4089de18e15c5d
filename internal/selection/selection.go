// Package selection translates free-text operator answers into validated
// segment and clip choices. Bad tokens are dropped, never errored: a fully
// invalid answer degenerates to an empty result meaning "no selection".
package selection

import (
	"sort"
	"strconv"
	"strings"
)

// IsSkip reports whether the operator declined the prompt outright. Callers
// check this before parsing; "skip" is not part of the selection grammar.
func IsSkip(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "skip")
}

// ParseSet parses an unordered selection: comma-separated integers and a-b
// ranges, with "all" meaning the full 1..maxID sequence. Range endpoints are
// clamped into [1,maxID]; a range that is empty after clamping contributes
// nothing, and bare out-of-range integers are dropped. The result is
// deduplicated and ascending regardless of the order the operator typed.
func ParseSet(answer string, maxID int) []int {
	answer = strings.TrimSpace(answer)
	if answer == "" || maxID < 1 {
		return nil
	}
	if strings.EqualFold(answer, "all") {
		return sequence(maxID)
	}

	seen := make(map[int]bool)
	var out []int
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, tok := range strings.Split(answer, ",") {
		tok = strings.TrimSpace(tok)
		if lo, hi, ok := parseRange(tok); ok {
			if lo < 1 {
				lo = 1
			}
			if hi > maxID {
				hi = maxID
			}
			for n := lo; n <= hi; n++ {
				add(n)
			}
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > maxID {
			continue
		}
		add(n)
	}
	sort.Ints(out)
	return out
}

// ParseOrder parses an ordered selection: comma-separated integers only, no
// ranges. Invalid and out-of-range tokens are dropped; survivors keep the
// operator's order exactly, duplicates included. "all" yields 1..maxIndex
// ascending.
func ParseOrder(answer string, maxIndex int) []int {
	answer = strings.TrimSpace(answer)
	if answer == "" || maxIndex < 1 {
		return nil
	}
	if strings.EqualFold(answer, "all") {
		return sequence(maxIndex)
	}

	var out []int
	for _, tok := range strings.Split(answer, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n < 1 || n > maxIndex {
			continue
		}
		out = append(out, n)
	}
	return out
}

func parseRange(tok string) (lo, hi int, ok bool) {
	a, b, found := strings.Cut(tok, "-")
	if !found {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
