// Package media recognises video platform URLs.
package media

import "regexp"

// videoIDPatterns are tried in order, the first match wins. The order decides precedence when a URL happens to match
// several shapes. The captured ID stops at '?', '#' and '/', so trailing query parameters, fragments and path
// segments are left out rather than swallowed as a greedy capture would.
var videoIDPatterns = []*regexp.Regexp{
	// Watch-style: https://www.youtube.com/watch?v=ID&t=42
	regexp.MustCompile(`youtube\.com/watch\?v=([^&#?\s/]+)`),
	// Short-link: https://youtu.be/ID
	regexp.MustCompile(`youtu\.be/([^&#?\s/]+)`),
	// Embed-style: https://www.youtube.com/embed/ID
	regexp.MustCompile(`youtube\.com/embed/([^&#?\s/]+)`),
	// Direct-id: https://www.youtube.com/v/ID
	regexp.MustCompile(`youtube\.com/v/([^&#?\s/]+)`),
}

// VideoID extracts the video identifier from url. It returns false for empty or unrecognised URLs.
func VideoID(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(url); len(match) > 1 && match[1] != "" {
			return match[1], true
		}
	}
	return "", false
}

// EmbedURL returns the URL of the embeddable player for the video id.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}
