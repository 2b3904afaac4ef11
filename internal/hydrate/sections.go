package hydrate

import (
	"github.com/myrjola/constellation/internal/content"
	"github.com/myrjola/constellation/internal/interaction"
	"github.com/myrjola/constellation/internal/markup"
	"github.com/myrjola/constellation/internal/page"
	"strconv"
)

// Wishlist fills the wishlist. Items are rendered verbatim in order.
func Wishlist(doc *content.Document) []page.Patch {
	w := doc.Wishlist
	if w == nil {
		return nil
	}
	items := make([]*markup.Node, 0, len(w.Items))
	for _, item := range w.Items {
		items = append(items, markup.TextEl("li", item))
	}
	return []page.Patch{
		page.SetText(page.HookWishlistTitle, w.Title),
		page.SetText(page.HookWishlistText, w.Leading),
		page.SetChildren(page.HookWishlistList, items...),
	}
}

// QuizLabels are the two labels of the reveal toggle.
type QuizLabels struct {
	Reveal string
	Hide   string
}

// Labels returns the reveal toggle labels of the document's quiz.
func Labels(doc *content.Document) QuizLabels {
	labels := QuizLabels{Reveal: FallbackRevealLabel, Hide: FallbackHideLabel}
	if doc == nil || doc.Quiz == nil {
		return labels
	}
	if doc.Quiz.RevealLabel != "" {
		labels.Reveal = doc.Quiz.RevealLabel
	}
	if doc.Quiz.HideLabel != "" {
		labels.Hide = doc.Quiz.HideLabel
	}
	return labels
}

// Quiz renders one card per question. Without questions the quiz section is hidden and no cards are created.
func Quiz(doc *content.Document, s interaction.State) []page.Patch {
	questions := doc.Questions()
	if len(questions) == 0 {
		return []page.Patch{
			page.SetChildren(page.HookQuiz),
			page.Hidden(page.HookQuizSection, true),
		}
	}
	labels := Labels(doc)
	cards := make([]*markup.Node, 0, len(questions))
	for i, q := range questions {
		cards = append(cards, QuizCard(i, q, s.IsRevealed(i), labels))
	}
	return []page.Patch{
		page.SetChildren(page.HookQuiz, cards...),
		page.Hidden(page.HookQuizSection, false),
	}
}

// QuizCard renders a single card. The answer is visible only when revealed and the toggle label follows.
func QuizCard(index int, q content.QuizQuestion, revealed bool, labels QuizLabels) *markup.Node {
	label := labels.Reveal
	if revealed {
		label = labels.Hide
	}
	return markup.El("article",
		markup.TextEl("p", q.Prompt).Class("quiz-card__question"),
		markup.TextEl("button", label).
			Class("quiz-card__reveal").
			Set("type", "button").
			Set("data-quiz-index", itoa(index)).
			Set("aria-expanded", boolString(revealed)).
			Set("hx-post", "/quiz/"+itoa(index)+"/toggle").
			Set("hx-target", "closest .quiz-card").
			Set("hx-swap", "outerHTML"),
		markup.TextEl("p", q.Answer).
			Class("quiz-card__answer").
			Flag("hidden", !revealed),
	).Class("quiz-card").Set("id", "quiz-card-"+itoa(index))
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
