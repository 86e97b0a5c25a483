package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
	"github.com/fredcamaral/slidefmt/internal/domain/services"
)

// Session runs one interactive create-or-modify exchange
type Session struct {
	prompter *Prompter
	service  ports.PresentationService
	output   entities.OutputConfig
	logger   *slog.Logger
}

// NewSession creates a new interactive session
func NewSession(prompter *Prompter, service ports.PresentationService, output entities.OutputConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		prompter: prompter,
		service:  service,
		output:   output,
		logger:   logger,
	}
}

// Run asks for the mode and the filename, then creates or restyles the presentation
func (s *Session) Run(ctx context.Context) error {
	choice, err := s.prompter.Choice()
	if err != nil {
		return err
	}

	switch choice {
	case ChoiceCreate:
		return s.create(ctx)
	case ChoiceModify:
		return s.modify(ctx)
	default:
		return fmt.Errorf("%w: %d (expected %d or %d)", entities.ErrInvalidChoice, choice, ChoiceCreate, ChoiceModify)
	}
}

func (s *Session) create(ctx context.Context) error {
	name, err := s.prompter.Filename()
	if err != nil {
		return err
	}
	path := name + s.output.GetExtension()

	report, err := s.service.CreateAndSave(ctx, path)
	if err != nil {
		return err
	}

	s.logger.Debug("Create finished", slog.String("path", path), slog.String("report", report.String()))
	s.prompter.Success(fmt.Sprintf("Presentation saved as %s", path))
	return nil
}

func (s *Session) modify(ctx context.Context) error {
	name, err := s.prompter.Filename()
	if err != nil {
		return err
	}
	in := name + s.output.GetExtension()
	out := services.ModifiedPath(in, s.output.GetModifiedSuffix())

	report, err := s.service.ModifyAndSave(ctx, in, out)
	if err != nil {
		return err
	}

	s.logger.Debug("Modify finished", slog.String("path", out), slog.String("report", report.String()))
	s.prompter.Success(fmt.Sprintf("Font and size changed to %s and saved as %s", s.service.FontFamily(), out))
	return nil
}
