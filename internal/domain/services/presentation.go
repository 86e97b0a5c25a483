package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

// bodyPlaceholderIdx is the idx of the body placeholder on the "Title and Content" layout
const bodyPlaceholderIdx = 1

// PresentationOptions carries the configuration the presentation flows need
type PresentationOptions struct {
	LayoutIndex int
	SlidesFile  string
	Slides      []entities.SlideContent
	Profile     entities.StyleProfile
}

// PresentationOptionsFromConfig extracts the presentation options from a loaded config
func PresentationOptionsFromConfig(config *entities.Config) PresentationOptions {
	return PresentationOptions{
		LayoutIndex: config.Create.LayoutIndex,
		SlidesFile:  config.Create.SlidesFile,
		Slides:      config.Create.Slides,
		Profile:     config.Style.Profile(),
	}
}

// DefaultPresentationOptions mirrors the built-in defaults: layout 1, demo slides, default style
func DefaultPresentationOptions() PresentationOptions {
	return PresentationOptions{
		LayoutIndex: 1,
		Profile:     entities.DefaultStyleProfile(),
	}
}

// PresentationService implements the business logic for creating and restyling decks
type PresentationService struct {
	repo   ports.DeckRepository
	source ports.SlideSource
	opts   PresentationOptions
	logger *slog.Logger
}

// NewPresentationService creates a new presentation service instance
func NewPresentationService(
	repo ports.DeckRepository,
	source ports.SlideSource,
	opts PresentationOptions,
	logger *slog.Logger,
) *PresentationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PresentationService{
		repo:   repo,
		source: source,
		opts:   opts,
		logger: logger,
	}
}

// SlideRecords returns the records create mode writes: the configured slides file,
// else the inline slides, else the three demo slides
func (s *PresentationService) SlideRecords(ctx context.Context) ([]entities.SlideContent, error) {
	switch {
	case s.opts.SlidesFile != "":
		if s.source == nil {
			return nil, errors.New("slides file configured but no slide source available")
		}
		records, err := s.source.LoadSlides(ctx, s.opts.SlidesFile)
		if err != nil {
			return nil, fmt.Errorf("loading slides: %w", err)
		}
		return records, nil
	case len(s.opts.Slides) > 0:
		return s.opts.Slides, nil
	default:
		return entities.DefaultSlides(), nil
	}
}

// CreatePresentation builds a new deck with one slide per record. The title placeholder
// receives the record title and the body placeholder its content; body runs get the
// content font family and size.
func (s *PresentationService) CreatePresentation(ctx context.Context, records []entities.SlideContent) (ports.Deck, error) {
	deck, err := s.repo.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating presentation: %w", err)
	}

	body := s.opts.Profile.Content
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slide, err := deck.AddSlide(s.opts.LayoutIndex)
		if err != nil {
			return nil, fmt.Errorf("adding slide %d: %w", i+1, err)
		}

		title := slide.Title()
		if title == nil {
			return nil, fmt.Errorf("slide %d: layout %d has no title: %w", i+1, s.opts.LayoutIndex, entities.ErrPlaceholderNotFound)
		}
		title.SetText(record.Title)

		content, err := slide.Placeholder(bodyPlaceholderIdx)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		content.SetText(record.Content)

		for _, paragraph := range content.Paragraphs() {
			for _, run := range paragraph.Runs() {
				run.SetFontFamily(body.FontFamily)
				run.SetSize(body.Size)
			}
		}
	}

	s.logger.Debug("Presentation created",
		slog.Int("slides", len(records)),
		slog.Int("layout", s.opts.LayoutIndex),
	)
	return deck, nil
}

// ChangeFontAndSize restyles every run of every text shape. Runs of the slide's title
// placeholder get profile.Title, all others profile.Content. Alignment is set on each
// paragraph that has at least one run. Applying it twice yields the same document.
func (s *PresentationService) ChangeFontAndSize(ctx context.Context, deck ports.Deck, profile entities.StyleProfile) (entities.RestyleReport, error) {
	var report entities.RestyleReport

	for _, slide := range deck.Slides() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Add(restyleSlide(slide, profile))
	}

	s.logger.Debug("Presentation restyled", slog.String("report", report.String()))
	return report, nil
}

func restyleSlide(slide ports.DeckSlide, profile entities.StyleProfile) entities.RestyleReport {
	report := entities.RestyleReport{Slides: 1}

	for _, shape := range slide.Shapes() {
		style := profile.Content
		if shape.IsTitle() {
			style = profile.Title
		}
		report.Shapes++

		for _, paragraph := range shape.Paragraphs() {
			report.Paragraphs++

			runs := paragraph.Runs()
			if len(runs) == 0 {
				continue
			}
			for _, run := range runs {
				run.SetFontFamily(style.FontFamily)
				run.SetSize(style.Size)
				run.SetColor(style.Color)
			}
			paragraph.SetAlignment(style.Alignment)
			report.Runs += len(runs)
		}
	}
	return report
}

// CreateAndSave creates the configured slides, restyles them and writes the deck to path
func (s *PresentationService) CreateAndSave(ctx context.Context, path string) (entities.RestyleReport, error) {
	records, err := s.SlideRecords(ctx)
	if err != nil {
		return entities.RestyleReport{}, err
	}

	deck, err := s.CreatePresentation(ctx, records)
	if err != nil {
		return entities.RestyleReport{}, err
	}

	report, err := s.ChangeFontAndSize(ctx, deck, s.opts.Profile)
	if err != nil {
		return report, fmt.Errorf("restyling presentation: %w", err)
	}

	if err := s.repo.Save(ctx, deck, path); err != nil {
		return report, fmt.Errorf("saving presentation: %w", err)
	}

	s.logger.Info("Presentation saved",
		slog.String("path", path),
		slog.Int("slides", report.Slides),
	)
	return report, nil
}

// ModifyAndSave opens the deck at in, restyles it and writes the result to out
func (s *PresentationService) ModifyAndSave(ctx context.Context, in, out string) (entities.RestyleReport, error) {
	deck, err := s.repo.Open(ctx, in)
	if err != nil {
		return entities.RestyleReport{}, fmt.Errorf("loading presentation: %w", err)
	}

	report, err := s.ChangeFontAndSize(ctx, deck, s.opts.Profile)
	if err != nil {
		return report, fmt.Errorf("restyling presentation: %w", err)
	}

	if err := s.repo.Save(ctx, deck, out); err != nil {
		return report, fmt.Errorf("saving presentation: %w", err)
	}

	s.logger.Info("Presentation restyled",
		slog.String("source", in),
		slog.String("path", out),
		slog.String("font", s.opts.Profile.Content.FontFamily),
		slog.Int("runs", report.Runs),
	)
	return report, nil
}

// FontFamily returns the family applied to content runs
func (s *PresentationService) FontFamily() string {
	return s.opts.Profile.Content.FontFamily
}

// ModifiedPath inserts suffix before the extension: deck.pptx -> deck_modified.pptx
func ModifiedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// Ensure PresentationService implements ports.PresentationService
var _ ports.PresentationService = (*PresentationService)(nil)
