package application_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/viuelpadel/internal/application"
)

func TestNavigationHistory_PushesOrigin(t *testing.T) {
	h := application.NewNavigationHistory()

	h.Transition("/a", "/b")
	h.Transition("/b", "/c")

	assert.Equal(t, []string{"/a", "/b"}, h.Entries())
}

func TestNavigationHistory_BackPops(t *testing.T) {
	h := application.NewNavigationHistory()
	h.Transition("/a", "/b")
	h.Transition("/b", "/c")

	h.Transition("/c", "/b")

	assert.Equal(t, []string{"/a"}, h.Entries())
}

func TestNavigationHistory_IgnoresFirstLoadAndSamePath(t *testing.T) {
	h := application.NewNavigationHistory()

	h.Transition("", "/a")
	h.Transition("/a", "/a")

	assert.Empty(t, h.Entries())
}

func TestNavigationHistory_PreviousRoute(t *testing.T) {
	h := application.NewNavigationHistory()
	h.Transition("/a", "/b")

	prev, ok := h.PreviousRoute("/b")
	assert.True(t, ok)
	assert.Equal(t, "/a", prev)

	_, ok = h.PreviousRoute("/a")
	assert.False(t, ok, "the only entry equals current")
}

func TestNavigationHistory_PreviousRouteSkipsCurrent(t *testing.T) {
	h := application.NewNavigationHistory()
	h.Transition("/a", "/b")
	h.Transition("/b", "/c")

	prev, ok := h.PreviousRoute("/b")
	assert.True(t, ok)
	assert.Equal(t, "/a", prev)
}

func TestNavigationHistory_EvictsOldest(t *testing.T) {
	h := application.NewNavigationHistory()

	for i := 0; i <= application.MaxHistoryEntries; i++ {
		h.Transition(fmt.Sprintf("/p%d", i), fmt.Sprintf("/p%d", i+1))
	}

	entries := h.Entries()
	assert.Len(t, entries, application.MaxHistoryEntries)
	assert.Equal(t, "/p1", entries[0])
	assert.Equal(t, fmt.Sprintf("/p%d", application.MaxHistoryEntries), entries[len(entries)-1])
}

func TestNavigationHistory_VisitTracksCurrent(t *testing.T) {
	h := application.NewNavigationHistory()

	h.Visit("/")
	h.Visit("/clients")
	h.Visit("/client/Ana")

	assert.Equal(t, "/client/Ana", h.Current())
	assert.Equal(t, []string{"/", "/clients"}, h.Entries())

	h.Visit("/clients")
	assert.Equal(t, []string{"/"}, h.Entries())

	h.Reset()
	assert.Empty(t, h.Entries())
	assert.Empty(t, h.Current())
}

func TestNavigationHistory_EntriesIsSnapshot(t *testing.T) {
	h := application.NewNavigationHistory()
	h.Transition("/a", "/b")

	entries := h.Entries()
	entries[0] = "/changed"

	assert.Equal(t, []string{"/a"}, h.Entries())
}
