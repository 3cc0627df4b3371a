package calendar

import "sort"

// Selection is an ordered, deduplicated set of canonical dates, sorted
// ascending. Mutating operations return a fresh slice so callers that rely
// on reference identity always observe a change.
type Selection []string

// Contains reports membership via binary search; the slice is always sorted.
func (s Selection) Contains(date string) bool {
	i := sort.SearchStrings(s, date)
	return i < len(s) && s[i] == date
}

// Toggle removes the date if present, otherwise inserts it, and returns a
// new sorted selection. The receiver is never modified.
func (s Selection) Toggle(date string) Selection {
	out := make(Selection, 0, len(s)+1)
	removed := false
	for _, d := range s {
		if d == date {
			removed = true
			continue
		}
		out = append(out, d)
	}
	if !removed {
		out = append(out, date)
		sort.Strings(out)
	}
	return out
}
