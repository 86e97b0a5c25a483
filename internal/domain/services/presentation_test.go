package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidefmt/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
	"github.com/fredcamaral/slidefmt/internal/test/builders"
)

type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) New(ctx context.Context) (ports.Deck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Deck), args.Error(1)
}

func (m *MockDeckRepository) Open(ctx context.Context, path string) (ports.Deck, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Deck), args.Error(1)
}

func (m *MockDeckRepository) Save(ctx context.Context, deck ports.Deck, path string) error {
	args := m.Called(ctx, deck, path)
	return args.Error(0)
}

type MockSlideSource struct {
	mock.Mock
}

func (m *MockSlideSource) LoadSlides(ctx context.Context, path string) ([]entities.SlideContent, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.SlideContent), args.Error(1)
}

func newTestService(source ports.SlideSource) *PresentationService {
	return NewPresentationService(pptx.NewRepository(nil, nil), source, DefaultPresentationOptions(), nil)
}

func deckBytes(t *testing.T, deck ports.Deck) []byte {
	t.Helper()
	pres, ok := deck.(*pptx.Presentation)
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, pres.Write(&buf))
	return buf.Bytes()
}

func bodyOf(t *testing.T, slide ports.DeckSlide) ports.TextShape {
	t.Helper()
	body, err := slide.Placeholder(bodyPlaceholderIdx)
	require.NoError(t, err)
	return body
}

func TestPresentationService_CreatePresentation(t *testing.T) {
	ctx := context.Background()

	t.Run("writes title and content of each record", func(t *testing.T) {
		service := newTestService(nil)
		records := entities.DefaultSlides()

		deck, err := service.CreatePresentation(ctx, records)
		require.NoError(t, err)

		slides := deck.Slides()
		require.Len(t, slides, 3)
		for i, record := range records {
			assert.Equal(t, record.Title, slides[i].Title().Text())
			assert.Equal(t, record.Content, bodyOf(t, slides[i]).Text())
		}
	})

	t.Run("styles body runs only", func(t *testing.T) {
		service := newTestService(nil)

		deck, err := service.CreatePresentation(ctx, []entities.SlideContent{
			{Title: "Agenda", Content: "Intro\nDemo\nQ&A"},
		})
		require.NoError(t, err)
		slide := deck.Slides()[0]

		paragraphs := bodyOf(t, slide).Paragraphs()
		require.Len(t, paragraphs, 3)
		for _, paragraph := range paragraphs {
			for _, run := range paragraph.Runs() {
				assert.Equal(t, entities.DefaultFontFamily, run.Font().Family)
				assert.Equal(t, entities.DefaultContentSize, run.Font().Size)
			}
		}

		titleRun := slide.Title().Paragraphs()[0].Runs()[0]
		assert.Equal(t, "", titleRun.Font().Family)
	})

	t.Run("empty record leaves empty placeholders", func(t *testing.T) {
		service := newTestService(nil)

		deck, err := service.CreatePresentation(ctx, []entities.SlideContent{{}})
		require.NoError(t, err)

		slide := deck.Slides()[0]
		assert.Equal(t, "", slide.Title().Text())
		assert.Equal(t, "", bodyOf(t, slide).Text())
	})

	t.Run("no records gives an empty deck", func(t *testing.T) {
		service := newTestService(nil)

		deck, err := service.CreatePresentation(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, deck.Slides())
	})

	t.Run("unknown layout", func(t *testing.T) {
		opts := DefaultPresentationOptions()
		opts.LayoutIndex = 9
		service := NewPresentationService(pptx.NewRepository(nil, nil), nil, opts, nil)

		_, err := service.CreatePresentation(ctx, entities.DefaultSlides())
		assert.ErrorIs(t, err, entities.ErrLayoutNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &MockDeckRepository{}
		repo.On("New", mock.Anything).Return(nil, errors.New("template missing"))
		service := NewPresentationService(repo, nil, DefaultPresentationOptions(), nil)

		_, err := service.CreatePresentation(ctx, entities.DefaultSlides())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating presentation")
		repo.AssertExpectations(t)
	})

	t.Run("cancelled context", func(t *testing.T) {
		service := newTestService(nil)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := service.CreatePresentation(cancelled, entities.DefaultSlides())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPresentationService_ChangeFontAndSize(t *testing.T) {
	ctx := context.Background()
	profile := entities.DefaultStyleProfile()

	t.Run("applies title and content styles", func(t *testing.T) {
		service := newTestService(nil)
		deck, err := service.CreatePresentation(ctx, entities.DefaultSlides())
		require.NoError(t, err)

		report, err := service.ChangeFontAndSize(ctx, deck, profile)
		require.NoError(t, err)
		assert.Equal(t, entities.RestyleReport{Slides: 3, Shapes: 6, Paragraphs: 6, Runs: 6}, report)

		for _, slide := range deck.Slides() {
			for _, shape := range slide.Shapes() {
				want := profile.Content
				if shape.IsTitle() {
					want = profile.Title
				}
				for _, paragraph := range shape.Paragraphs() {
					assert.Equal(t, want.Alignment, paragraph.Alignment())
					for _, run := range paragraph.Runs() {
						font := run.Font()
						assert.Equal(t, want.FontFamily, font.Family)
						assert.Equal(t, want.Size, font.Size)
						assert.True(t, font.HasColor)
						assert.Equal(t, entities.Black, font.Color)
					}
				}
			}
		}
	})

	t.Run("custom profile", func(t *testing.T) {
		service := newTestService(nil)
		deck, err := service.CreatePresentation(ctx, entities.DefaultSlides()[:1])
		require.NoError(t, err)

		custom := entities.StyleProfile{
			Title:   entities.TextStyle{FontFamily: "Georgia", Size: 40, Color: entities.RGBColor{0x11, 0x22, 0x33}, Alignment: entities.AlignRight},
			Content: entities.TextStyle{FontFamily: "Arial", Size: 18, Color: entities.RGBColor{0x44, 0x55, 0x66}, Alignment: entities.AlignJustify},
		}
		_, err = service.ChangeFontAndSize(ctx, deck, custom)
		require.NoError(t, err)

		slide := deck.Slides()[0]
		title := slide.Title().Paragraphs()[0]
		assert.Equal(t, entities.AlignRight, title.Alignment())
		assert.Equal(t, "Georgia", title.Runs()[0].Font().Family)

		body := bodyOf(t, slide).Paragraphs()[0]
		assert.Equal(t, entities.AlignJustify, body.Alignment())
		assert.Equal(t, entities.Points(18), body.Runs()[0].Font().Size)
		assert.Equal(t, entities.RGBColor{0x44, 0x55, 0x66}, body.Runs()[0].Font().Color)
	})

	t.Run("paragraphs without runs keep their alignment", func(t *testing.T) {
		service := newTestService(nil)
		deck, err := service.CreatePresentation(ctx, []entities.SlideContent{{Title: "Only a title"}})
		require.NoError(t, err)

		report, err := service.ChangeFontAndSize(ctx, deck, profile)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Runs)

		body := bodyOf(t, deck.Slides()[0]).Paragraphs()[0]
		assert.Equal(t, entities.Alignment(""), body.Alignment())
	})

	t.Run("idempotent", func(t *testing.T) {
		service := newTestService(nil)
		deck, err := service.CreatePresentation(ctx, entities.DefaultSlides())
		require.NoError(t, err)

		_, err = service.ChangeFontAndSize(ctx, deck, profile)
		require.NoError(t, err)
		once := deckBytes(t, deck)

		_, err = service.ChangeFontAndSize(ctx, deck, profile)
		require.NoError(t, err)
		twice := deckBytes(t, deck)

		assert.Equal(t, once, twice)
	})

	t.Run("empty deck", func(t *testing.T) {
		service := newTestService(nil)
		deck, err := service.CreatePresentation(ctx, nil)
		require.NoError(t, err)

		report, err := service.ChangeFontAndSize(ctx, deck, profile)
		require.NoError(t, err)
		assert.Equal(t, entities.RestyleReport{}, report)
	})
}

func TestPresentationService_SlideRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to demo slides", func(t *testing.T) {
		records, err := newTestService(nil).SlideRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultSlides(), records)
	})

	t.Run("inline slides", func(t *testing.T) {
		opts := DefaultPresentationOptions()
		opts.Slides = []entities.SlideContent{{Title: "A", Content: "B"}}
		service := NewPresentationService(nil, nil, opts, nil)

		records, err := service.SlideRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, opts.Slides, records)
	})

	t.Run("slides file", func(t *testing.T) {
		want := []entities.SlideContent{{Title: "From file", Content: "Body"}}
		source := &MockSlideSource{}
		source.On("LoadSlides", mock.Anything, "deck.yaml").Return(want, nil)

		opts := DefaultPresentationOptions()
		opts.SlidesFile = "deck.yaml"
		service := NewPresentationService(nil, source, opts, nil)

		records, err := service.SlideRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, records)
		source.AssertExpectations(t)
	})

	t.Run("slides file error", func(t *testing.T) {
		source := &MockSlideSource{}
		source.On("LoadSlides", mock.Anything, "deck.yaml").Return(nil, errors.New("bad yaml"))

		opts := DefaultPresentationOptions()
		opts.SlidesFile = "deck.yaml"
		service := NewPresentationService(nil, source, opts, nil)

		_, err := service.SlideRecords(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading slides")
	})

	t.Run("slides file without source", func(t *testing.T) {
		opts := DefaultPresentationOptions()
		opts.SlidesFile = "deck.yaml"
		service := NewPresentationService(nil, nil, opts, nil)

		_, err := service.SlideRecords(ctx)
		assert.Error(t, err)
	})
}

func TestPresentationService_CreateAndModify(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := pptx.NewRepository(nil, nil)
	service := NewPresentationService(repo, nil, DefaultPresentationOptions(), nil)

	created := filepath.Join(dir, "deck.pptx")
	report, err := service.CreateAndSave(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Slides)

	deck, err := repo.Open(ctx, created)
	require.NoError(t, err)
	for i, record := range entities.DefaultSlides() {
		slide := deck.Slides()[i]
		assert.Equal(t, record.Title, slide.Title().Text())
		assert.Equal(t, record.Content, bodyOf(t, slide).Text())
	}

	modified := ModifiedPath(created, "_modified")
	report, err = service.ModifyAndSave(ctx, created, modified)
	require.NoError(t, err)
	assert.Equal(t, 6, report.Runs)

	deck, err = repo.Open(ctx, modified)
	require.NoError(t, err)
	require.Len(t, deck.Slides(), 3)
	run := deck.Slides()[0].Title().Paragraphs()[0].Runs()[0]
	assert.Equal(t, entities.DefaultTitleSize, run.Font().Size)
	assert.Equal(t, "Title 1", run.Text())
}

func TestPresentationService_ModifyAndSaveErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("open failure", func(t *testing.T) {
		repo := &MockDeckRepository{}
		repo.On("Open", mock.Anything, "in.pptx").Return(nil, errors.New("no such file"))
		service := NewPresentationService(repo, nil, DefaultPresentationOptions(), nil)

		_, err := service.ModifyAndSave(ctx, "in.pptx", "out.pptx")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading presentation")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		deck, err := pptx.Blank()
		require.NoError(t, err)

		repo := &MockDeckRepository{}
		repo.On("Open", mock.Anything, "in.pptx").Return(deck, nil)
		repo.On("Save", mock.Anything, deck, "out.pptx").Return(errors.New("disk full"))
		service := NewPresentationService(repo, nil, DefaultPresentationOptions(), nil)

		_, err = service.ModifyAndSave(ctx, "in.pptx", "out.pptx")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "saving presentation")
		repo.AssertExpectations(t)
	})
}

func TestModifiedPath(t *testing.T) {
	tests := []struct {
		path, suffix, want string
	}{
		{"deck.pptx", "_modified", "deck_modified.pptx"},
		{"/tmp/talks/deck.pptx", "_modified", "/tmp/talks/deck_modified.pptx"},
		{"my.pptx.deck.pptx", "_v2", "my.pptx.deck_v2.pptx"},
		{"noext", "_modified", "noext_modified"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ModifiedPath(tt.path, tt.suffix))
		})
	}
}

func TestPresentationOptionsFromConfig(t *testing.T) {
	config := styleConfig("Arial", 0)
	config.Create.SlidesFile = "slides.yaml"

	opts := PresentationOptionsFromConfig(config)
	assert.Equal(t, 0, opts.LayoutIndex)
	assert.Equal(t, "slides.yaml", opts.SlidesFile)
	assert.Equal(t, "Arial", opts.Profile.Title.FontFamily)
	assert.Equal(t, entities.AlignCenter, opts.Profile.Title.Alignment)
}

func TestPresentationService_ConfiguredDeck(t *testing.T) {
	ctx := context.Background()
	slides := builders.NewSlidesBuilder().
		WithSlide("Agenda", "Intro").
		WithParagraphs("Plan", "Build", "Ship").
		Build()
	config := builders.NewConfigBuilder().
		WithFont("Georgia").
		WithSizes(40, 20).
		WithColor("1E40AF").
		WithAlignment("left", "right").
		WithSlides(slides).
		Build()

	repo := pptx.NewRepository(nil, nil)
	service := NewPresentationService(repo, nil, PresentationOptionsFromConfig(config), nil)
	path := filepath.Join(t.TempDir(), "configured.pptx")

	report, err := service.CreateAndSave(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Slides)

	deck, err := repo.Open(ctx, path)
	require.NoError(t, err)
	require.Len(t, deck.Slides(), 2)

	plan := deck.Slides()[1]
	assert.Equal(t, "Plan", plan.Title().Text())
	assert.Equal(t, "Build\nShip", bodyOf(t, plan).Text())

	titleParagraph := plan.Title().Paragraphs()[0]
	assert.Equal(t, entities.AlignLeft, titleParagraph.Alignment())
	font := titleParagraph.Runs()[0].Font()
	assert.Equal(t, "Georgia", font.Family)
	assert.Equal(t, entities.Points(40), font.Size)
	assert.Equal(t, entities.RGBColor{0x1E, 0x40, 0xAF}, font.Color)

	for _, paragraph := range bodyOf(t, plan).Paragraphs() {
		assert.Equal(t, entities.AlignRight, paragraph.Alignment())
		assert.Equal(t, entities.Points(20), paragraph.Runs()[0].Font().Size)
	}
}
