package ui_test

import (
	"github.com/myrjola/constellation/internal/page"
	"github.com/myrjola/constellation/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/fs"
	"strings"
	"testing"
)

func TestShell(t *testing.T) {
	shell, err := ui.ParseShell()
	require.NoError(t, err)

	p, err := shell.Page("abc", "token")
	require.NoError(t, err)

	doc := p.Document()
	assert.Equal(t, "ru", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, 3, doc.Find(`script[nonce="abc"]`).Length())
	assert.JSONEq(t, `{"X-CSRF-Token": "token"}`, doc.Find("body").AttrOr("hx-headers", ""))

	// Every hook has an id equal to its name, out-of-band swaps find their target by it.
	for _, h := range page.Hooks {
		id := strings.TrimPrefix(string(h), "data-")
		assert.Equal(t, id, p.Region(h).AttrOr("id", ""), "hook %s", h)
	}

	closeControl := p.Region(page.HookMemoryClose)
	assert.Contains(t, closeControl.AttrOr("hx-trigger", ""), "keydown[key=='Escape'] from:body")
	assert.Contains(t, closeControl.AttrOr("hx-trigger", ""), "click")
	assert.Equal(t, "#memory-panel", closeControl.AttrOr("hx-target", ""))
	assert.Equal(t, "/memories/close", closeControl.AttrOr("hx-post", ""))
}

func TestShell_freshPerExecution(t *testing.T) {
	shell, err := ui.ParseShell()
	require.NoError(t, err)

	first, err := shell.Page("one", "")
	require.NoError(t, err)
	require.NoError(t, first.Apply(page.SetText(page.HookHeroTitle, "patched")))

	second, err := shell.Page("two", "")
	require.NoError(t, err)
	assert.Empty(t, second.Region(page.HookHeroTitle).Text())
	assert.Equal(t, 3, second.Document().Find(`script[nonce="two"]`).Length())
}

func TestStatic(t *testing.T) {
	static, err := ui.Static()
	require.NoError(t, err)
	for _, name := range []string{"js/main.js", "css/main.css", "data/content.json"} {
		_, err = fs.Stat(static, name)
		assert.NoError(t, err, name)
	}
}
