// Package tui provides a Bubble Tea terminal UI for cavern games.
package tui

// History keeps recent commands for Up/Down recall. While the player
// browses, the line they were typing is kept as a draft and comes back
// after the newest entry.
type History struct {
	entries []string
	limit   int
	pos     int // len(entries) when not browsing
	draft   string
}

// NewHistory creates a history holding at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a command and stops browsing. A repeat of the newest
// entry is not stored twice.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.Reset()
}

// Prev steps to the next older entry. current is the line being typed; it
// is kept as the draft when browsing starts.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps to the next newer entry. Past the newest it returns the draft
// and reports false.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return h.draft, false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, false
	}
	return h.entries[h.pos], true
}

// Reset stops browsing and forgets the draft.
func (h *History) Reset() {
	h.pos = len(h.entries)
	h.draft = ""
}

// Len returns the number of stored commands.
func (h *History) Len() int {
	return len(h.entries)
}
