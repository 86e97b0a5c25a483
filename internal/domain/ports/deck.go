package ports

import (
	"context"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
)

// Deck is an in-memory presentation document. Slides are mutated in place
// and only reach disk through DeckRepository.Save.
type Deck interface {
	// Slides returns the slides in presentation order
	Slides() []DeckSlide

	// AddSlide appends a slide built from the layout at layoutIndex
	AddSlide(layoutIndex int) (DeckSlide, error)

	// LayoutCount returns the number of slide layouts available to AddSlide
	LayoutCount() int
}

// DeckSlide is a single slide of a Deck
type DeckSlide interface {
	// Shapes returns the top-level shapes that carry a text frame, in document order
	Shapes() []TextShape

	// Title returns the slide's title placeholder, or nil when it has none
	Title() TextShape

	// Placeholder returns the placeholder with the given idx
	Placeholder(idx int) (TextShape, error)
}

// TextShape is a shape with a text frame
type TextShape interface {
	Name() string

	// IsTitle reports whether this shape is the slide's title placeholder
	IsTitle() bool

	// Text returns the paragraphs joined with "\n"
	Text() string

	// SetText replaces all text. "\n" starts a new paragraph, "\v" inserts a line break.
	SetText(text string)

	Paragraphs() []TextParagraph
}

// TextParagraph is a paragraph inside a text frame
type TextParagraph interface {
	// Alignment returns the explicit alignment, or "" when inherited
	Alignment() entities.Alignment
	SetAlignment(a entities.Alignment)

	Runs() []TextRun
}

// RunFont describes the explicit character formatting of a run.
// Zero values mean the property is inherited.
type RunFont struct {
	Family   string
	Size     entities.Points
	Color    entities.RGBColor
	HasColor bool
}

// TextRun is the smallest unit of styled text
type TextRun interface {
	Text() string
	Font() RunFont

	SetFontFamily(family string)
	SetSize(size entities.Points)
	SetColor(color entities.RGBColor)
}

// DeckRepository creates, opens and persists decks
type DeckRepository interface {
	// New returns a deck built from the default template
	New(ctx context.Context) (Deck, error)

	// Open reads a deck from path
	Open(ctx context.Context, path string) (Deck, error)

	// Save writes the deck to path, replacing any existing file
	Save(ctx context.Context, deck Deck, path string) error
}

// SlideSource loads slide content records from a file
type SlideSource interface {
	LoadSlides(ctx context.Context, path string) ([]entities.SlideContent, error)
}
