// Package hydrate turns a content document and a viewer's state into patches for the page shell. Every function is
// pure: it reads its slice of the document and returns a description of the region, committing it is up to
// [page.Page.Apply].
package hydrate

import (
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/interaction"
	"github.com/myrjola/constellation/internal/markup"
	"github.com/myrjola/constellation/internal/page"
	"strconv"
	"strings"
	"time"
)

// Fallbacks used when the content document leaves the value out.
const (
	FallbackLocale      = "ru"
	FallbackFinaleLabel = "Ты наше главное сияние"
	FallbackRevealLabel = "Показать ответ"
	FallbackHideLabel   = "Скрыть ответ"
)

// Defaults are the labels the shell ships with. They are used when the document has none of its own.
type Defaults struct {
	WishLabel string
	FinaleCta string
}

// DefaultsFrom reads the shell labels from a freshly parsed page.
func DefaultsFrom(p *page.Page) Defaults {
	return Defaults{
		WishLabel: strings.TrimSpace(p.Region(page.HookWishButton).Text()),
		FinaleCta: strings.TrimSpace(p.Region(page.HookOpenAll).Text()),
	}
}

// Page returns the patches hydrating the whole page. A nil document leaves the shell as it is.
func Page(doc *content.Document, v interaction.View, d Defaults) []page.Patch {
	if doc == nil {
		return nil
	}
	var patches []page.Patch
	patches = append(patches, Locale(doc))
	patches = append(patches, Hero(doc)...)
	patches = append(patches, WishButton(WishLabel(doc, d), v.WishActive)...)
	patches = append(patches, PlaylistToggle(v.PlaylistExpanded)...)
	patches = append(patches, Constellations(doc, v.State)...)
	patches = append(patches, FinaleButton(doc, v.FinaleRunning, d)...)
	patches = append(patches, MemoryPanel(doc, v.State)...)
	patches = append(patches, Wishlist(doc)...)
	patches = append(patches, Quiz(doc, v.State)...)
	return patches
}

// Locale sets the document language.
func Locale(doc *content.Document) page.Patch {
	lang := doc.Language
	if lang == "" {
		lang = FallbackLocale
	}
	return page.SetAttr(page.HookPage, "lang", lang)
}

// SettleMargin is added to a transient window before the settled state is requested, so the server timer has fired
// by the time the request arrives.
const SettleMargin = 50 * time.Millisecond

// poll is a hidden child that asks the server for the settled state of its control once the transient window has
// passed. It replaces the whole control, itself included.
func poll(path string, window time.Duration) *markup.Node {
	delay := (window + SettleMargin).Milliseconds()
	return markup.El("span").
		Flag("hidden", true).
		Set("hx-get", path).
		Set("hx-trigger", "load delay:"+strconv.FormatInt(delay, 10)+"ms").
		Set("hx-target", "closest button").
		Set("hx-swap", "outerHTML")
}

func position(i int) string {
	return strconv.Itoa(i + 1)
}
