// Package content holds the content document that drives the greeting page and the ways to load it.
package content

// Document is the root of the content document. Only Name and Memories are required, absence of the optional
// sections suppresses the corresponding page regions.
type Document struct {
	Language       string          `json:"language,omitempty" yaml:"language,omitempty"`
	Name           string          `json:"name" yaml:"name"`
	Hero           *Hero           `json:"hero,omitempty" yaml:"hero,omitempty"`
	Constellations *Constellations `json:"constellations,omitempty" yaml:"constellations,omitempty"`
	Memories       []Memory        `json:"memories" yaml:"memories"`
	Wishlist       *Wishlist       `json:"wishlist,omitempty" yaml:"wishlist,omitempty"`
	Quiz           *Quiz           `json:"quiz,omitempty" yaml:"quiz,omitempty"`
}

type Hero struct {
	Eyebrow         string    `json:"eyebrow" yaml:"eyebrow"`
	Title           string    `json:"title" yaml:"title"`
	Subtitle        string    `json:"subtitle" yaml:"subtitle"`
	WishButtonLabel string    `json:"wishButtonLabel" yaml:"wishButtonLabel"`
	Playlist        *Playlist `json:"playlist,omitempty" yaml:"playlist,omitempty"`
}

type Playlist struct {
	ButtonLabel string  `json:"buttonLabel" yaml:"buttonLabel"`
	Note        string  `json:"note" yaml:"note"`
	Tracks      []Track `json:"tracks" yaml:"tracks"`
}

// Track is a playlist entry. URL is expected to point to a playable video.
type Track struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

type Constellations struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	// FinaleCta is the call to action on the finale button when no finale is running.
	FinaleCta string `json:"finaleCta,omitempty" yaml:"finaleCta,omitempty"`
	// FinaleLabel replaces the call to action while the finale is running.
	FinaleLabel string `json:"finaleLabel,omitempty" yaml:"finaleLabel,omitempty"`
}

// Memory is one reveal card. It is identified by its index in [Document.Memories]. At most one of Image and Video
// is expected to be set.
type Memory struct {
	Type    string `json:"type" yaml:"type"`
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
	Image   string `json:"image,omitempty" yaml:"image,omitempty"`
	Video   string `json:"video,omitempty" yaml:"video,omitempty"`
	Poster  string `json:"poster,omitempty" yaml:"poster,omitempty"`
	Alt     string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

type Wishlist struct {
	Title   string   `json:"title" yaml:"title"`
	Leading string   `json:"leading" yaml:"leading"`
	Items   []string `json:"items" yaml:"items"`
}

type Quiz struct {
	Questions []QuizQuestion `json:"questions" yaml:"questions"`
	// RevealLabel and HideLabel override the default reveal button labels.
	RevealLabel string `json:"revealLabel,omitempty" yaml:"revealLabel,omitempty"`
	HideLabel   string `json:"hideLabel,omitempty" yaml:"hideLabel,omitempty"`
}

type QuizQuestion struct {
	Prompt string `json:"prompt" yaml:"prompt"`
	Answer string `json:"answer" yaml:"answer"`
}

// Memory returns the memory at index and whether it exists.
func (d *Document) Memory(index int) (Memory, bool) {
	if d == nil || index < 0 || index >= len(d.Memories) {
		return Memory{}, false
	}
	return d.Memories[index], true
}

// Questions returns the quiz questions or nil when there is no quiz.
func (d *Document) Questions() []QuizQuestion {
	if d == nil || d.Quiz == nil {
		return nil
	}
	return d.Quiz.Questions
}
