package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config represents the complete application configuration
type Config struct {
	Style   StyleConfig   `toml:"style"`
	Create  CreateConfig  `toml:"create"`
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Style.Validate(); err != nil {
		return fmt.Errorf("style config: %w", err)
	}

	if err := c.Create.Validate(); err != nil {
		return fmt.Errorf("create config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// StyleConfig contains the text style applied by the restyle pass
type StyleConfig struct {
	FontFamily       string  `toml:"font_family" validate:"required"`
	TitleSize        float64 `toml:"title_size" validate:"gte=1,lte=4000"`
	ContentSize      float64 `toml:"content_size" validate:"gte=1,lte=4000"`
	Color            string  `toml:"color" validate:"required"`
	TitleAlignment   string  `toml:"title_alignment" validate:"required"`
	ContentAlignment string  `toml:"content_alignment" validate:"required"`
}

// Validate validates style configuration
func (s StyleConfig) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationErrors(err)
	}

	if _, err := ParseRGBColor(s.Color); err != nil {
		return err
	}

	if _, err := ParseAlignment(s.TitleAlignment); err != nil {
		return fmt.Errorf("title alignment: %w", err)
	}

	if _, err := ParseAlignment(s.ContentAlignment); err != nil {
		return fmt.Errorf("content alignment: %w", err)
	}

	return nil
}

// Profile converts the configuration into the style profile used by the restyle pass.
// It must only be called on a validated configuration.
func (s StyleConfig) Profile() StyleProfile {
	color, _ := ParseRGBColor(s.Color)
	titleAlign, _ := ParseAlignment(s.TitleAlignment)
	contentAlign, _ := ParseAlignment(s.ContentAlignment)

	return StyleProfile{
		Title: TextStyle{
			FontFamily: s.FontFamily,
			Size:       Points(s.TitleSize),
			Color:      color,
			Alignment:  titleAlign,
		},
		Content: TextStyle{
			FontFamily: s.FontFamily,
			Size:       Points(s.ContentSize),
			Color:      color,
			Alignment:  contentAlign,
		},
	}
}

// CreateConfig contains settings for create mode
type CreateConfig struct {
	LayoutIndex int            `toml:"layout_index" validate:"gte=0"`
	SlidesFile  string         `toml:"slides_file"`
	Slides      []SlideContent `toml:"slides"`
}

// Validate validates create configuration
func (c CreateConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	if c.SlidesFile != "" && len(c.Slides) > 0 {
		return errors.New("slides_file and slides are mutually exclusive")
	}

	return nil
}

// OutputConfig contains file naming settings
type OutputConfig struct {
	Extension      string `toml:"extension"`
	ModifiedSuffix string `toml:"modified_suffix"`
}

// Validate validates output configuration
func (o OutputConfig) Validate() error {
	if o.Extension != "" && !strings.HasPrefix(o.Extension, ".") {
		return fmt.Errorf("extension must start with a dot: %s", o.Extension)
	}

	if strings.ContainsAny(o.ModifiedSuffix, `/\`) {
		return fmt.Errorf("modified suffix cannot contain path separators: %s", o.ModifiedSuffix)
	}

	return nil
}

// GetExtension returns the extension with default
func (o OutputConfig) GetExtension() string {
	if o.Extension == "" {
		return ".pptx"
	}
	return o.Extension
}

// GetModifiedSuffix returns the modified suffix with default
func (o OutputConfig) GetModifiedSuffix() string {
	if o.ModifiedSuffix == "" {
		return "_modified"
	}
	return o.ModifiedSuffix
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	Verbose    bool   `toml:"verbose"`     // Enable verbose logging
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
	File       string `toml:"file"`        // Log to file (optional)
	MaxSize    int    `toml:"max_size"`    // Maximum log file size in MB
	MaxAge     int    `toml:"max_age"`     // Maximum age in days
	MaxBackups int    `toml:"max_backups"` // Maximum number of backup files
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.File != "" {
		if !filepath.IsAbs(l.File) {
			return errors.New("log file path must be absolute")
		}

		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}

		if l.MaxSize < 0 {
			return errors.New("max log file size must be non-negative")
		}

		if l.MaxAge < 0 {
			return errors.New("max log file age must be non-negative")
		}

		if l.MaxBackups < 0 {
			return errors.New("max log backups must be non-negative")
		}
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}

// GetMaxSize returns the max file size with default (100MB)
func (l LoggingConfig) GetMaxSize() int {
	if l.MaxSize <= 0 {
		return 100
	}
	return l.MaxSize
}

// GetMaxAge returns the max age with default (7 days)
func (l LoggingConfig) GetMaxAge() int {
	if l.MaxAge <= 0 {
		return 7
	}
	return l.MaxAge
}

// GetMaxBackups returns the max backups with default (5)
func (l LoggingConfig) GetMaxBackups() int {
	if l.MaxBackups <= 0 {
		return 5
	}
	return l.MaxBackups
}

// formatValidationErrors converts validator errors into "field rule" messages
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gt", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s%s", field, orEqual(e.Tag()), e.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation: %s", field, e.Tag()))
		}
	}

	return errors.New(strings.Join(msgs, "; "))
}

func orEqual(tag string) string {
	if tag == "gte" {
		return "or equal to "
	}
	return ""
}
