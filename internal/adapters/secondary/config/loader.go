package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

const defaultsHeader = `# slidefmt configuration
#
# [style] is applied to every text run when a deck is created or modified.
# Colors are hex RGB, sizes are points, alignments are left/center/right/justify.
# [create] slides_file names a YAML list of {title, content} records.

`

// TOMLLoader reads slidefmt.toml files: the per-user file under ~/.config/slidefmt,
// the one in the working directory and any file named with --config
type TOMLLoader struct {
	globalPath string
	localName  string
}

// NewTOMLLoader creates a loader for the standard slidefmt locations
func NewTOMLLoader() *TOMLLoader {
	homeDir, _ := os.UserHomeDir()

	return &TOMLLoader{
		globalPath: filepath.Join(homeDir, ".config", "slidefmt", "config.toml"),
		localName:  "slidefmt.toml",
	}
}

// LoadGlobal reads the per-user file, writing it with the defaults on first run
func (l *TOMLLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	if _, err := os.Stat(l.globalPath); errors.Is(err, fs.ErrNotExist) {
		if err := l.CreateDefaults(ctx, l.globalPath); err != nil {
			return nil, fmt.Errorf("creating defaults: %w", err)
		}
	}

	return l.loadConfig(l.globalPath)
}

// LoadLocal reads ./slidefmt.toml from dir. Without one it returns (nil, nil).
func (l *TOMLLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	path := l.GetLocalPath(dir)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	return l.loadConfig(path)
}

// LoadFile reads a file named on the command line; unlike the local file it must exist
func (l *TOMLLoader) LoadFile(ctx context.Context, path string) (*entities.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return l.loadConfig(path)
}

// CreateDefaults writes the built-in style, create, output and logging settings to
// path behind a short commented header
func (l *TOMLLoader) CreateDefaults(ctx context.Context, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	var buf bytes.Buffer
	buf.WriteString(defaultsHeader)

	encoder := toml.NewEncoder(&buf)
	encoder.Indent = "  "
	if err := encoder.Encode(GetDefaultConfig()); err != nil {
		return fmt.Errorf("encoding config to %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil { // #nosec G306 - config holds no secrets
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	return nil
}

// GetGlobalPath returns the per-user config path
func (l *TOMLLoader) GetGlobalPath() string {
	return l.globalPath
}

// GetLocalPath returns the slidefmt.toml path inside dir
func (l *TOMLLoader) GetLocalPath(dir string) string {
	return filepath.Join(dir, l.localName)
}

// loadConfig decodes path and checks it. A file usually sets only a few keys, so the
// check runs on the file laid over the defaults; the create section is also checked
// alone because a slides_file plus inline slides conflict regardless of defaults.
func (l *TOMLLoader) loadConfig(path string) (*entities.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - global, local or user-named config
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var config entities.Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing TOML from %s: %w", path, err)
	}

	if err := config.Create.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: create config: %w", path, err)
	}
	if err := NewConfigMerger().Merge(GetDefaultConfig(), &config).Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}

	return &config, nil
}

var _ ports.ConfigLoader = (*TOMLLoader)(nil)
