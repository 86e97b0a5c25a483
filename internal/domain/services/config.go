package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

// ConfigService resolves the style, create, output and logging settings a run uses
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
	}
}

// LoadConfig layers the built-in defaults, the global file, ./slidefmt.toml and the
// --config file (flags["config"]), then applies SLIDEFMT_* variables and the style
// flags. The result is validated as a whole.
func (s *ConfigService) LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error) {
	layers, err := s.fileLayers(ctx, workingDir, flags)
	if err != nil {
		return nil, err
	}

	config := s.merger.Merge(layers...)
	config = s.merger.ApplyEnvVars(config)
	config = s.merger.ApplyFlags(config, flags)

	if err := s.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}
	return config, nil
}

// fileLayers returns the configs to merge, lowest precedence first. Missing optional
// files are skipped; the global file is written with defaults on first use.
func (s *ConfigService) fileLayers(ctx context.Context, workingDir string, flags map[string]interface{}) ([]*entities.Config, error) {
	layers := []*entities.Config{s.GetDefaultConfig()}

	global, err := s.loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	local, err := s.loader.LoadLocal(ctx, workingDir)
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	for _, layer := range []*entities.Config{global, local} {
		if layer != nil {
			layers = append(layers, layer)
		}
	}

	if path, ok := flags["config"].(string); ok && path != "" {
		explicit, err := s.loader.LoadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		layers = append(layers, explicit)
	}

	return layers, nil
}

// GetDefaultConfig returns the built-in settings. The merger owns the defaults, and
// merging nothing yields them.
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}
	return config.Validate()
}

// CreateGlobalConfig writes ~/.config/slidefmt/config.toml with the default style
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) error {
	return s.loader.CreateDefaults(ctx, s.loader.GetGlobalPath())
}

var _ ports.ConfigService = (*ConfigService)(nil)
