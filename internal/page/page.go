// Package page resolves the hooked regions of the page shell and commits hydrator patches to them.
package page

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/constellation/internal/errors"
	"golang.org/x/net/html"
	"io"
	"log/slog"
)

var ErrMissingHook = errors.NewSentinel("missing expected region")

// Page is a parsed shell with every hook resolved.
type Page struct {
	doc     *goquery.Document
	regions map[Hook]*goquery.Selection
}

// Parse parses the shell and resolves every hook in [Hooks]. All missing hooks are reported at once, each wrapping
// [ErrMissingHook].
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse shell")
	}

	p := &Page{
		doc:     doc,
		regions: make(map[Hook]*goquery.Selection, len(Hooks)),
	}
	var missing []error
	for _, h := range Hooks {
		sel := doc.Find(h.Selector()).First()
		if sel.Length() == 0 {
			missing = append(missing, errors.Wrap(ErrMissingHook, "resolve hook", slog.String("hook", string(h))))
			continue
		}
		p.regions[h] = sel
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}
	return p, nil
}

// Apply commits the patches in order.
func (p *Page) Apply(patches ...Patch) error {
	for _, patch := range patches {
		sel, ok := p.regions[patch.Hook]
		if !ok {
			return errors.Wrap(ErrMissingHook, "apply patch", slog.String("hook", string(patch.Hook)))
		}
		switch patch.op {
		case opText:
			sel.Empty()
			sel.AppendNodes(&html.Node{Type: html.TextNode, Data: patch.text})
		case opChildren:
			sel.Empty()
			for _, n := range patch.nodes {
				sel.AppendNodes(n.HTML())
			}
		case opSetAttr:
			sel.SetAttr(patch.key, patch.text)
		case opRemoveAttr:
			sel.RemoveAttr(patch.key)
		case opAddClass:
			sel.AddClass(patch.key)
		case opRemoveClass:
			sel.RemoveClass(patch.key)
		}
	}
	return nil
}

// Region returns the element of the hook for inspection.
func (p *Page) Region(h Hook) *goquery.Selection {
	return p.regions[h]
}

// Document returns the underlying document.
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// Render writes the whole page.
func (p *Page) Render(w io.Writer) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return errors.Wrap(err, "write doctype")
	}
	for c := p.doc.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			continue
		}
		if err := html.Render(w, c); err != nil {
			return errors.Wrap(err, "render html")
		}
	}
	return nil
}

// RenderRegions writes the outer HTML of each region. All regions but the first are marked for an htmx
// out-of-band swap, so the first one is the target of the request and the rest update themselves by id.
func (p *Page) RenderRegions(w io.Writer, hooks ...Hook) error {
	for i, h := range hooks {
		sel, ok := p.regions[h]
		if !ok {
			return errors.Wrap(ErrMissingHook, "render region", slog.String("hook", string(h)))
		}
		if i > 0 {
			sel.SetAttr("hx-swap-oob", "true")
		}
		if err := html.Render(w, sel.Nodes[0]); err != nil {
			return errors.Wrap(err, "render region", slog.String("hook", string(h)))
		}
	}
	return nil
}
