package slides

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

// YAMLSource loads slide records from YAML files. Both a bare list of records and a
// document with a top-level "slides" key are accepted.
type YAMLSource struct {
	fs     ports.FileSystem
	logger *slog.Logger
}

// NewYAMLSource creates a slide source reading through fs
func NewYAMLSource(fs ports.FileSystem, logger *slog.Logger) *YAMLSource {
	if fs == nil {
		fs = ports.NewRealFileSystem()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &YAMLSource{fs: fs, logger: logger}
}

// LoadSlides reads and parses the slides file at path
func (s *YAMLSource) LoadSlides(ctx context.Context, path string) ([]entities.SlideContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading slides file: %w", err)
	}

	records, err := ParseSlides(data)
	if err != nil {
		return nil, fmt.Errorf("parsing slides file %s: %w", path, err)
	}

	s.logger.Debug("Loaded slides", slog.String("path", path), slog.Int("count", len(records)))
	return records, nil
}

// ParseSlides decodes YAML slide records. A UTF-8 or UTF-16 byte order mark is honored.
func ParseSlides(data []byte) ([]entities.SlideContent, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(decoded)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no slides defined")
		}
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("no slides defined")
	}

	var records []entities.SlideContent
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&records); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var wrapper struct {
			Slides []entities.SlideContent `yaml:"slides"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, err
		}
		records = wrapper.Slides
	default:
		return nil, fmt.Errorf("line %d: expected a list of slides", root.Line)
	}

	if len(records) == 0 {
		return nil, errors.New("no slides defined")
	}
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return records, nil
}

// Ensure YAMLSource implements ports.SlideSource
var _ ports.SlideSource = (*YAMLSource)(nil)
