package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	config := &entities.Config{
		Style: entities.StyleConfig{
			FontFamily:       entities.DefaultFontFamily,
			TitleSize:        float64(entities.DefaultTitleSize),
			ContentSize:      float64(entities.DefaultContentSize),
			Color:            entities.Black.Hex(),
			TitleAlignment:   string(entities.AlignCenter),
			ContentAlignment: string(entities.AlignLeft),
		},
		Create: entities.CreateConfig{
			LayoutIndex: 1,
			SlidesFile:  "",
		},
		Output: entities.OutputConfig{
			Extension:      ".pptx",
			ModifiedSuffix: "_modified",
		},
		Logging: entities.LoggingConfig{
			Level:      getEnvOrDefault("SLIDEFMT_LOG_LEVEL", "info"),
			Verbose:    getEnvBoolOrDefault("SLIDEFMT_LOG_VERBOSE", false),
			JSONFormat: getEnvBoolOrDefault("SLIDEFMT_LOG_JSON", false),
			File:       getEnvOrDefault("SLIDEFMT_LOG_FILE", ""),
			MaxSize:    getEnvIntOrDefault("SLIDEFMT_LOG_MAX_SIZE", 100),
			MaxAge:     getEnvIntOrDefault("SLIDEFMT_LOG_MAX_AGE", 7),
			MaxBackups: getEnvIntOrDefault("SLIDEFMT_LOG_MAX_BACKUPS", 5),
		},
	}

	return config
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
