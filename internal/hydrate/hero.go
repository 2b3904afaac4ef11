package hydrate

import (
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/interaction"
	"github.com/myrjola/constellation/internal/markup"
	"github.com/myrjola/constellation/internal/media"
	"github.com/myrjola/constellation/internal/page"
	"strings"
)

const playerPermissions = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"

// Hero fills the hero banner and, when the document has one, the playlist.
func Hero(doc *content.Document) []page.Patch {
	hero := doc.Hero
	if hero == nil {
		return nil
	}
	patches := []page.Patch{
		page.SetText(page.HookHeroTitle, strings.ReplaceAll(hero.Title, "{name}", doc.Name)),
		page.SetText(page.HookHeroSubtitle, hero.Subtitle),
		page.SetText(page.HookHeroEyebrow, hero.Eyebrow),
	}
	if pl := hero.Playlist; pl != nil {
		patches = append(patches,
			page.SetText(page.HookPlaylistLabel, pl.ButtonLabel),
			page.SetText(page.HookPlaylistNote, pl.Note),
			page.SetChildren(page.HookPlaylistList, Playlist(pl.Tracks)...),
		)
	}
	return patches
}

// Playlist returns one list item per track. Tracks with a recognised video get an embedded player, the rest a
// plain link.
func Playlist(tracks []content.Track) []*markup.Node {
	items := make([]*markup.Node, 0, len(tracks))
	for i, track := range tracks {
		label := position(i) + ". " + track.Label
		id, ok := media.VideoID(track.URL)
		if !ok {
			items = append(items, markup.El("li",
				markup.TextEl("a", label).
					Set("href", track.URL).
					Set("target", "_blank").
					Set("rel", "noopener noreferrer"),
			))
			continue
		}
		items = append(items, markup.El("li",
			markup.El("div",
				markup.TextEl("p", label).Class("playlist-player__label"),
				markup.El("iframe").
					Class("playlist-player__iframe").
					Set("src", media.EmbedURL(id)).
					Set("allow", playerPermissions).
					Flag("allowfullscreen", true).
					Set("loading", "lazy").
					Set("title", track.Label),
			).Class("playlist-player"),
		))
	}
	return items
}

// PlaylistToggle shows or hides the playlist panel in lockstep with the toggle's aria-expanded. An expanded panel
// takes focus when it is swapped in.
func PlaylistToggle(expanded bool) []page.Patch {
	return []page.Patch{
		page.SetAttr(page.HookPlaylistButton, "aria-expanded", boolString(expanded)),
		page.Hidden(page.HookPlaylistPanel, !expanded),
		page.Flag(page.HookPlaylistPanel, "autofocus", expanded),
	}
}

// WishButton renders the wish button. An active button carries btn--active until its window has passed.
func WishButton(label string, active bool) []page.Patch {
	children := []*markup.Node{markup.Text(label)}
	if active {
		children = append(children, poll("/wish", interaction.WishWindow))
	}
	return []page.Patch{
		page.SetChildren(page.HookWishButton, children...),
		page.Class(page.HookWishButton, "btn--active", active),
	}
}

// WishLabel returns the label of the wish button.
func WishLabel(doc *content.Document, d Defaults) string {
	if doc != nil && doc.Hero != nil && doc.Hero.WishButtonLabel != "" {
		return doc.Hero.WishButtonLabel
	}
	return d.WishLabel
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
