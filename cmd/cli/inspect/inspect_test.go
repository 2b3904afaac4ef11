package inspect_test

import (
	"bytes"
	"github.com/myrjola/constellation/cmd/cli/inspect"
	"github.com/myrjola/constellation/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestMemoriesTable(t *testing.T) {
	out := inspect.MemoriesTable([]content.Memory{
		{Type: "Фото", Title: "Море", Image: "/sea.jpg"},
		{Type: "Видео", Title: "Танец", Video: "/dance.mp4"},
		{Type: "Письмо", Title: "Письмо"},
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7, "three rows, a header and the borders")
	assert.Contains(t, lines[3], "image /sea.jpg")
	assert.Contains(t, lines[4], "video /dance.mp4")
	assert.Contains(t, lines[5], "-")
}

func TestTracksTable(t *testing.T) {
	out := inspect.TracksTable([]content.Track{
		{Label: "Первая", URL: "https://youtu.be/9bZkp7q19f0"},
		{Label: "Вторая", URL: "https://music.example.com/track/42"},
	})

	assert.Contains(t, out, "embed")
	assert.Contains(t, out, "9bZkp7q19f0")
	assert.Contains(t, out, "link")
}

func TestVideoID(t *testing.T) {
	var buf bytes.Buffer
	inspect.VideoID.SetOut(&buf)
	inspect.VideoID.SetArgs([]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://example.com",
	})
	require.NoError(t, inspect.VideoID.Execute())
	assert.Equal(t, "dQw4w9WgXcQ\n\n", buf.String())
}
