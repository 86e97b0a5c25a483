package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	// Start with first config as base
	result := deepCopy(configs[0])

	// Merge subsequent configs
	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if font, ok := flags["font"].(string); ok && font != "" {
		result.Style.FontFamily = font
	}

	if size, ok := flags["title-size"].(float64); ok && size > 0 {
		result.Style.TitleSize = size
	}

	if size, ok := flags["content-size"].(float64); ok && size > 0 {
		result.Style.ContentSize = size
	}

	if slides, ok := flags["slides"].(string); ok && slides != "" {
		result.Create.SlidesFile = slides
		result.Create.Slides = nil
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	// Style configuration from environment
	if font := os.Getenv("SLIDEFMT_FONT"); font != "" {
		result.Style.FontFamily = font
	}

	if sizeStr := os.Getenv("SLIDEFMT_TITLE_SIZE"); sizeStr != "" {
		if size, err := strconv.ParseFloat(sizeStr, 64); err == nil && size > 0 {
			result.Style.TitleSize = size
		}
	}

	if sizeStr := os.Getenv("SLIDEFMT_CONTENT_SIZE"); sizeStr != "" {
		if size, err := strconv.ParseFloat(sizeStr, 64); err == nil && size > 0 {
			result.Style.ContentSize = size
		}
	}

	if color := os.Getenv("SLIDEFMT_COLOR"); color != "" {
		result.Style.Color = color
	}

	if align := os.Getenv("SLIDEFMT_TITLE_ALIGN"); align != "" {
		result.Style.TitleAlignment = align
	}

	if align := os.Getenv("SLIDEFMT_CONTENT_ALIGN"); align != "" {
		result.Style.ContentAlignment = align
	}

	// Create configuration from environment
	if layoutStr := os.Getenv("SLIDEFMT_LAYOUT"); layoutStr != "" {
		if layout, err := strconv.Atoi(layoutStr); err == nil && layout >= 0 {
			result.Create.LayoutIndex = layout
		}
	}

	if slides := os.Getenv("SLIDEFMT_SLIDES_FILE"); slides != "" {
		result.Create.SlidesFile = slides
		result.Create.Slides = nil
	}

	// Output configuration from environment
	if suffix := os.Getenv("SLIDEFMT_MODIFIED_SUFFIX"); suffix != "" {
		result.Output.ModifiedSuffix = suffix
	}

	// Logging configuration from environment
	if level := os.Getenv("SLIDEFMT_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	if file := os.Getenv("SLIDEFMT_LOG_FILE"); file != "" {
		result.Logging.File = file
	}

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Style config
	if source.Style.FontFamily != "" {
		target.Style.FontFamily = source.Style.FontFamily
	}
	if source.Style.TitleSize != 0 {
		target.Style.TitleSize = source.Style.TitleSize
	}
	if source.Style.ContentSize != 0 {
		target.Style.ContentSize = source.Style.ContentSize
	}
	if source.Style.Color != "" {
		target.Style.Color = source.Style.Color
	}
	if source.Style.TitleAlignment != "" {
		target.Style.TitleAlignment = source.Style.TitleAlignment
	}
	if source.Style.ContentAlignment != "" {
		target.Style.ContentAlignment = source.Style.ContentAlignment
	}

	// Create config. TOML cannot tell an unset layout_index from 0, so 0 never overrides.
	if source.Create.LayoutIndex != 0 {
		target.Create.LayoutIndex = source.Create.LayoutIndex
	}
	// A slides source replaces the other kind
	if source.Create.SlidesFile != "" {
		target.Create.SlidesFile = source.Create.SlidesFile
		target.Create.Slides = nil
	}
	if len(source.Create.Slides) > 0 {
		target.Create.Slides = make([]entities.SlideContent, len(source.Create.Slides))
		copy(target.Create.Slides, source.Create.Slides)
		target.Create.SlidesFile = ""
	}

	// Output config
	if source.Output.Extension != "" {
		target.Output.Extension = source.Output.Extension
	}
	if source.Output.ModifiedSuffix != "" {
		target.Output.ModifiedSuffix = source.Output.ModifiedSuffix
	}

	// Logging config. Booleans only switch on, since false and unset look the same.
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.Verbose {
		target.Logging.Verbose = true
	}
	if source.Logging.JSONFormat {
		target.Logging.JSONFormat = true
	}
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
	if source.Logging.MaxSize != 0 {
		target.Logging.MaxSize = source.Logging.MaxSize
	}
	if source.Logging.MaxAge != 0 {
		target.Logging.MaxAge = source.Logging.MaxAge
	}
	if source.Logging.MaxBackups != 0 {
		target.Logging.MaxBackups = source.Logging.MaxBackups
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src

	// Copy slices
	if src.Create.Slides != nil {
		dst.Create.Slides = make([]entities.SlideContent, len(src.Create.Slides))
		copy(dst.Create.Slides, src.Create.Slides)
	}

	return &dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
