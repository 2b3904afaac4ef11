package interaction

import (
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/effect"
)

// State is the UI state of one viewer. It is stored in the viewer's session between requests.
type State struct {
	// ActiveIndex is the index of the open memory, nil when the memory panel is closed.
	ActiveIndex *int
	// PlaylistExpanded mirrors aria-expanded of the playlist toggle.
	PlaylistExpanded bool
	// Revealed holds the quiz cards whose answer is visible. Cards are independent of each other.
	Revealed map[int]bool
}

// Active returns the index of the open memory.
func (s State) Active() (int, bool) {
	if s.ActiveIndex == nil {
		return 0, false
	}
	return *s.ActiveIndex, true
}

// IsRevealed reports whether the answer of quiz card index is visible.
func (s State) IsRevealed(index int) bool {
	return s.Revealed[index]
}

// View is everything the hydrators need to render a viewer's page: the session state plus the transient feedback
// of controls whose scheduled tasks are still pending.
type View struct {
	State
	WishActive    bool
	FinaleRunning bool
}

// Session is the explicit context of one viewer's request. It is built per request and passed to every
// operation of the [Controller] instead of reaching for shared mutable state.
type Session struct {
	ViewerID string
	// Content is the immutable content snapshot, nil when loading failed.
	Content *content.Document
	State   *State
	Effects effect.Trigger
}
