package builders

import (
	"strconv"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
)

// SlidesBuilder helps build slide content records for testing
type SlidesBuilder struct {
	slides []entities.SlideContent
}

// NewSlidesBuilder creates an empty slides builder
func NewSlidesBuilder() *SlidesBuilder {
	return &SlidesBuilder{}
}

// WithSlide appends a record
func (b *SlidesBuilder) WithSlide(title, content string) *SlidesBuilder {
	b.slides = append(b.slides, entities.SlideContent{Title: title, Content: content})
	return b
}

// WithParagraphs appends a record whose content spans one paragraph per line
func (b *SlidesBuilder) WithParagraphs(title string, lines ...string) *SlidesBuilder {
	content := ""
	for i, line := range lines {
		if i > 0 {
			content += "\n"
		}
		content += line
	}
	return b.WithSlide(title, content)
}

// WithSlideCount appends numbered records: "Slide 1" / "Content 1", ...
func (b *SlidesBuilder) WithSlideCount(count int) *SlidesBuilder {
	start := len(b.slides)
	for i := 1; i <= count; i++ {
		n := strconv.Itoa(start + i)
		b.WithSlide("Slide "+n, "Content "+n)
	}
	return b
}

// Build returns a copy of the records
func (b *SlidesBuilder) Build() []entities.SlideContent {
	return append([]entities.SlideContent{}, b.slides...)
}

// ConfigBuilder helps build Config entities for testing
type ConfigBuilder struct {
	config *entities.Config
}

// NewConfigBuilder creates a config builder with the built-in defaults
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: &entities.Config{
			Style: entities.StyleConfig{
				FontFamily:       "Times New Roman",
				TitleSize:        36,
				ContentSize:      32,
				Color:            "000000",
				TitleAlignment:   "center",
				ContentAlignment: "left",
			},
			Create: entities.CreateConfig{LayoutIndex: 1},
			Output: entities.OutputConfig{Extension: ".pptx", ModifiedSuffix: "_modified"},
			Logging: entities.LoggingConfig{
				Level:      string(entities.LogLevelInfo),
				MaxSize:    100,
				MaxAge:     7,
				MaxBackups: 5,
			},
		},
	}
}

// WithFont sets the font family
func (b *ConfigBuilder) WithFont(family string) *ConfigBuilder {
	b.config.Style.FontFamily = family
	return b
}

// WithSizes sets the title and content sizes in points
func (b *ConfigBuilder) WithSizes(title, content float64) *ConfigBuilder {
	b.config.Style.TitleSize = title
	b.config.Style.ContentSize = content
	return b
}

// WithColor sets the text color as hex
func (b *ConfigBuilder) WithColor(hex string) *ConfigBuilder {
	b.config.Style.Color = hex
	return b
}

// WithAlignment sets the title and content alignment
func (b *ConfigBuilder) WithAlignment(title, content string) *ConfigBuilder {
	b.config.Style.TitleAlignment = title
	b.config.Style.ContentAlignment = content
	return b
}

// WithLayout sets the layout used for created slides
func (b *ConfigBuilder) WithLayout(index int) *ConfigBuilder {
	b.config.Create.LayoutIndex = index
	return b
}

// WithSlides sets inline slides and clears any slides file
func (b *ConfigBuilder) WithSlides(slides []entities.SlideContent) *ConfigBuilder {
	b.config.Create.Slides = slides
	b.config.Create.SlidesFile = ""
	return b
}

// WithSlidesFile sets the slides file and clears any inline slides
func (b *ConfigBuilder) WithSlidesFile(path string) *ConfigBuilder {
	b.config.Create.SlidesFile = path
	b.config.Create.Slides = nil
	return b
}

// WithLogLevel sets the logging level
func (b *ConfigBuilder) WithLogLevel(level entities.LogLevel) *ConfigBuilder {
	b.config.Logging.Level = string(level)
	return b
}

// Build creates the final Config entity
func (b *ConfigBuilder) Build() *entities.Config {
	config := *b.config
	config.Create.Slides = append([]entities.SlideContent(nil), b.config.Create.Slides...)
	return &config
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *entities.Config {
	return NewConfigBuilder().Build()
}
