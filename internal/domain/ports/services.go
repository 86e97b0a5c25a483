package ports

import (
	"context"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
)

// PresentationService defines the two end-to-end flows the command drives
type PresentationService interface {
	// CreateAndSave creates the configured slides, restyles them and writes the deck to path
	CreateAndSave(ctx context.Context, path string) (entities.RestyleReport, error)

	// ModifyAndSave opens the deck at in, restyles it and writes it to out
	ModifyAndSave(ctx context.Context, in, out string) (entities.RestyleReport, error)

	// FontFamily returns the font family applied to content text
	FontFamily() string
}
