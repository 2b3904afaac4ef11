package media_test

import (
	"github.com/myrjola/constellation/internal/media"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{name: "watch", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ", wantOK: true},
		{name: "watch with params", url: "https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", want: "dQw4w9WgXcQ", wantOK: true},
		{name: "short link", url: "https://youtu.be/9bZkp7q19f0", want: "9bZkp7q19f0", wantOK: true},
		{name: "short link with timestamp", url: "https://youtu.be/9bZkp7q19f0?t=10", want: "9bZkp7q19f0", wantOK: true},
		{name: "embed", url: "https://www.youtube.com/embed/kJQP7kiw5Fk", want: "kJQP7kiw5Fk", wantOK: true},
		{name: "embed with fragment", url: "https://www.youtube.com/embed/kJQP7kiw5Fk#t=5", want: "kJQP7kiw5Fk", wantOK: true},
		{name: "short link with path", url: "https://youtu.be/9bZkp7q19f0/extra", want: "9bZkp7q19f0", wantOK: true},
		{name: "direct id", url: "https://www.youtube.com/v/OPf0YbXqDm0", want: "OPf0YbXqDm0", wantOK: true},
		{
			// Watch-style takes precedence over the embed shape further along the URL.
			name:   "precedence",
			url:    "https://www.youtube.com/watch?v=first&next=youtube.com/embed/second",
			want:   "first",
			wantOK: true,
		},
		{name: "unrecognised", url: "https://music.example.com/track/42", wantOK: false},
		{name: "watch without id", url: "https://www.youtube.com/watch?list=abc", wantOK: false},
		{name: "empty", url: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := media.VideoID(tt.url)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEmbedURL(t *testing.T) {
	require.Equal(t, "https://www.youtube.com/embed/abc", media.EmbedURL("abc"))
}
