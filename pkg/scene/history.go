package scene

import "image"

// DefaultHistorySize is how many recent entries a viewer shows as thumbnails.
const DefaultHistorySize = 6

// Entry is one past render: what was drawn and a small picture of it.
type Entry struct {
	Params Params
	Thumb  image.Image // may be nil
}

// History is an undo stack of renders. Not safe for concurrent use.
type History struct {
	entries []Entry
}

func (h *History) Push(e Entry) {
	h.entries = append(h.entries, e)
}

// Undo drops the newest entry and returns the one below it, which is the
// view to go back to. It reports false when there is nothing to go back to.
func (h *History) Undo() (Entry, bool) {
	if len(h.entries) < 2 {
		return Entry{}, false
	}
	h.entries[len(h.entries)-1] = Entry{}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Current is the newest entry.
func (h *History) Current() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) Len() int {
	return len(h.entries)
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(n int) []Entry {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]Entry, 0, max(n, 0))
	for i := len(h.entries) - 1; i >= len(h.entries)-n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}
