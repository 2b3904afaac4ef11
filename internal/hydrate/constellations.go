package hydrate

import (
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/interaction"
	"github.com/myrjola/constellation/internal/markup"
	"github.com/myrjola/constellation/internal/page"
)

// Constellations fills the constellation headings and the grid of stars.
func Constellations(doc *content.Document, s interaction.State) []page.Patch {
	var patches []page.Patch
	if c := doc.Constellations; c != nil {
		patches = append(patches,
			page.SetText(page.HookConstellationsTitle, c.Title),
			page.SetText(page.HookConstellationsSubtitle, c.Subtitle),
		)
	}
	return append(patches, page.SetChildren(page.HookStars, Stars(doc.Memories, s)...))
}

// Stars returns one control per memory. The control of the open memory is marked active.
func Stars(memories []content.Memory, s interaction.State) []*markup.Node {
	active, open := s.Active()
	stars := make([]*markup.Node, 0, len(memories))
	for i, m := range memories {
		star := markup.TextEl("button", position(i)).
			Class("star").
			Set("type", "button").
			Set("data-index", itoa(i)).
			Set("aria-label", m.Title).
			Set("hx-post", "/memories/"+itoa(i)+"/open").
			Set("hx-target", page.HookMemoryPanel.Selector()).
			Set("hx-swap", "outerHTML")
		if open && active == i {
			star.Class("star--active").Set("aria-pressed", "true")
		}
		stars = append(stars, star)
	}
	return stars
}

// MemoryPanel shows the open memory or hides the panel when none is open.
func MemoryPanel(doc *content.Document, s interaction.State) []page.Patch {
	index, open := s.Active()
	m, ok := doc.Memory(index)
	if !open || !ok {
		return []page.Patch{
			page.SetChildren(page.HookMemoryMedia),
			page.Hidden(page.HookMemoryMedia, true),
			page.Hidden(page.HookMemoryPanel, true),
		}
	}
	patches := []page.Patch{
		page.SetText(page.HookMemoryType, m.Type),
		page.SetText(page.HookMemoryTitle, m.Title),
		page.SetText(page.HookMemoryMessage, m.Message),
	}
	patches = append(patches, MediaSwap(m)...)
	return append(patches, page.Hidden(page.HookMemoryPanel, false))
}

// MediaSwap resets the media region and renders the image or the video of the memory. A memory without media leaves
// the region empty and hidden.
func MediaSwap(m content.Memory) []page.Patch {
	node := Media(m)
	if node == nil {
		return []page.Patch{
			page.SetChildren(page.HookMemoryMedia),
			page.Hidden(page.HookMemoryMedia, true),
		}
	}
	return []page.Patch{
		page.SetChildren(page.HookMemoryMedia, node),
		page.Hidden(page.HookMemoryMedia, false),
	}
}

// Media returns the media element of the memory or nil. An image wins over a video.
func Media(m content.Memory) *markup.Node {
	switch {
	case m.Image != "":
		return markup.El("img").
			Class("memory-card__image").
			Set("src", m.Image).
			Set("alt", m.Alt)
	case m.Video != "":
		return markup.El("video").
			Class("memory-card__video").
			Set("src", m.Video).
			Flag("controls", true).
			Flag("playsinline", true).
			Set("preload", "metadata").
			SetIf(m.Poster != "", "poster", m.Poster)
	default:
		return nil
	}
}

// FinaleButton renders the finale control. While the finale runs the control is disabled and shows the finale
// label, afterwards it is enabled again with the call to action.
func FinaleButton(doc *content.Document, running bool, d Defaults) []page.Patch {
	label, cta := FallbackFinaleLabel, d.FinaleCta
	if doc != nil && doc.Constellations != nil {
		if doc.Constellations.FinaleLabel != "" {
			label = doc.Constellations.FinaleLabel
		}
		if doc.Constellations.FinaleCta != "" {
			cta = doc.Constellations.FinaleCta
		}
	}
	if running {
		return []page.Patch{
			page.SetChildren(page.HookOpenAll,
				markup.Text(label),
				poll("/finale", interaction.FinaleWindow),
			),
			page.Flag(page.HookOpenAll, "disabled", true),
		}
	}
	return []page.Patch{
		page.SetText(page.HookOpenAll, cta),
		page.Flag(page.HookOpenAll, "disabled", false),
	}
}
