package application

import "sync"

// MaxHistoryEntries bounds the navigation history; the oldest entry is
// evicted first.
const MaxHistoryEntries = 50

// NavigationHistory is a bounded LIFO of visited paths used to compute the
// target of "back" links. The top entry is the page the user came from,
// never the page they are on.
type NavigationHistory struct {
	mu      sync.Mutex
	entries []string
	current string
}

// NewNavigationHistory creates an empty history.
func NewNavigationHistory() *NavigationHistory {
	return &NavigationHistory{entries: make([]string, 0, MaxHistoryEntries)}
}

// Transition records a route change from one path to another. It does
// nothing on the first load (from is empty) or a same-path navigation. When
// the top entry equals the destination the user is going back, so it is
// popped; otherwise from is pushed.
func (h *NavigationHistory) Transition(from, to string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transition(from, to)
}

// Visit records a navigation from the last visited path to path.
func (h *NavigationHistory) Visit(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transition(h.current, path)
	h.current = path
}

func (h *NavigationHistory) transition(from, to string) {
	if from == "" || from == to {
		return
	}

	if n := len(h.entries); n > 0 && h.entries[n-1] == to {
		h.entries = h.entries[:n-1]
		return
	}

	h.entries = append(h.entries, from)
	if len(h.entries) > MaxHistoryEntries {
		h.entries = append(h.entries[:0], h.entries[len(h.entries)-MaxHistoryEntries:]...)
	}
}

// PreviousRoute returns the most recent entry that differs from current.
func (h *NavigationHistory) PreviousRoute(current string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i] != current {
			return h.entries[i], true
		}
	}
	return "", false
}

// Current returns the last path passed to Visit.
func (h *NavigationHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Entries returns a copy of the stack, oldest first.
func (h *NavigationHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Reset empties the history, as a full page reload would.
func (h *NavigationHistory) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.entries[:0]
	h.current = ""
}
