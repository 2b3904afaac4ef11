package render_test

import (
	"bytes"
	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/constellation/cmd/cli/render"
	"github.com/myrjola/constellation/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestWrite(t *testing.T) {
	doc, err := content.NewLoader(nil).Load(t.Context(), "../../../internal/content/testdata/content.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, doc))
	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	assert.NotEmpty(t, page.Find("[data-hero-title]").Text())
	assert.Equal(t, len(doc.Memories), page.Find("[data-stars] .star").Length())
	assert.True(t, page.Find("[data-memory-panel]").Is("[hidden]"))
	assert.Equal(t, 0, page.Find(".quiz-card__answer:not([hidden])").Length())
}

func TestWrite_withoutContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, nil))
	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	assert.Empty(t, page.Find("[data-hero-title]").Text())
	assert.Equal(t, "Загадать желание", page.Find("[data-wish-button]").Text())
}
