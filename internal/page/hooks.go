package page

// Hook names a page region by the data attribute the shell marks it with.
type Hook string

const (
	HookPage                   Hook = "data-page"
	HookHeroEyebrow            Hook = "data-hero-eyebrow"
	HookHeroTitle              Hook = "data-hero-title"
	HookHeroSubtitle           Hook = "data-hero-subtitle"
	HookWishButton             Hook = "data-wish-button"
	HookPlaylistButton         Hook = "data-playlist-button"
	HookPlaylistLabel          Hook = "data-playlist-label"
	HookPlaylistPanel          Hook = "data-playlist-panel"
	HookPlaylistNote           Hook = "data-playlist-note"
	HookPlaylistList           Hook = "data-playlist-list"
	HookConstellationsTitle    Hook = "data-constellations-title"
	HookConstellationsSubtitle Hook = "data-constellations-subtitle"
	HookStars                  Hook = "data-stars"
	HookOpenAll                Hook = "data-open-all"
	HookMemoryPanel            Hook = "data-memory-panel"
	HookMemoryClose            Hook = "data-close-panel"
	HookMemoryType             Hook = "data-memory-type"
	HookMemoryTitle            Hook = "data-memory-title"
	HookMemoryMessage          Hook = "data-memory-message"
	HookMemoryMedia            Hook = "data-memory-media"
	HookWishlistTitle          Hook = "data-wishlist-title"
	HookWishlistText           Hook = "data-wishlist-text"
	HookWishlistList           Hook = "data-wishlist-list"
	HookQuizSection            Hook = "data-quiz-section"
	HookQuiz                   Hook = "data-quiz"
)

// Hooks lists every region the shell must expose.
var Hooks = []Hook{
	HookPage,
	HookHeroEyebrow,
	HookHeroTitle,
	HookHeroSubtitle,
	HookWishButton,
	HookPlaylistButton,
	HookPlaylistLabel,
	HookPlaylistPanel,
	HookPlaylistNote,
	HookPlaylistList,
	HookConstellationsTitle,
	HookConstellationsSubtitle,
	HookStars,
	HookOpenAll,
	HookMemoryPanel,
	HookMemoryClose,
	HookMemoryType,
	HookMemoryTitle,
	HookMemoryMessage,
	HookMemoryMedia,
	HookWishlistTitle,
	HookWishlistText,
	HookWishlistList,
	HookQuizSection,
	HookQuiz,
}

// Selector returns the CSS selector matching the hook.
func (h Hook) Selector() string {
	return "[" + string(h) + "]"
}
