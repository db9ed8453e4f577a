package card

import (
	"cmp"
	"slices"
)

// SentinelID marks an entry whose KONAMI ID is unknown.
const SentinelID = 0

// Entry maps a KONAMI ID to a card's English name
type Entry struct {
	ID   int    // KONAMI ID, SentinelID when unknown
	Name string // English card name
}

// IsSentinel reports whether the entry has no known KONAMI ID
func (e Entry) IsSentinel() bool {
	return e.ID == SentinelID
}

// SortEntries sorts entries by KONAMI ID ascending. Entries sharing an ID keep
// their encounter order.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

// CountSentinels returns how many entries carry SentinelID
func CountSentinels(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.IsSentinel() {
			n++
		}
	}
	return n
}
