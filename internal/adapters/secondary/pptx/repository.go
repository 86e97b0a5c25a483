package pptx

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

// Repository reads and writes .pptx files
type Repository struct {
	fs     ports.FileSystem
	logger *slog.Logger
}

// NewRepository creates a repository backed by fs
func NewRepository(fs ports.FileSystem, logger *slog.Logger) *Repository {
	if fs == nil {
		fs = ports.NewRealFileSystem()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{fs: fs, logger: logger}
}

// New returns a presentation built from the default template
func (r *Repository) New(ctx context.Context) (ports.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Blank()
}

// Open reads the presentation at path
func (r *Repository) Open(ctx context.Context, path string) (ports.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening presentation: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("checking presentation file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("presentation path is not a regular file: %s", path)
	}

	pkg, err := ReadPackage(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	pres, err := OpenPresentation(pkg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	r.logger.Debug("Opened presentation",
		slog.String("path", path),
		slog.Int("slides", len(pres.slides)),
		slog.Int("layouts", len(pres.layouts)),
	)
	return pres, nil
}

// Save writes the deck next to path under a temporary name, then renames it into place
func (r *Repository) Save(ctx context.Context, deck ports.Deck, path string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	pres, ok := deck.(*Presentation)
	if !ok {
		return fmt.Errorf("unsupported deck type %T", deck)
	}

	dir, base := filepath.Split(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))

	file, err := r.fs.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmpPath, err)
	}
	defer func() {
		if err != nil {
			_ = file.Close()
			if rmErr := r.fs.Remove(tmpPath); rmErr != nil {
				r.logger.Warn("Failed to remove temporary file",
					slog.String("path", tmpPath),
					slog.String("error", rmErr.Error()),
				)
			}
		}
	}()

	if err = pres.Write(file); err != nil {
		return fmt.Errorf("writing presentation: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err = r.fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, path, err)
	}

	r.logger.Debug("Saved presentation", slog.String("path", path), slog.Int("slides", len(pres.slides)))
	return nil
}

// Ensure Repository implements ports.DeckRepository
var _ ports.DeckRepository = (*Repository)(nil)
