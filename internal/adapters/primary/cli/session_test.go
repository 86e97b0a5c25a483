package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidefmt/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
	"github.com/fredcamaral/slidefmt/internal/domain/services"
)

// MockPresentationService is a mock implementation of ports.PresentationService
type MockPresentationService struct {
	mock.Mock
}

func (m *MockPresentationService) CreateAndSave(ctx context.Context, path string) (entities.RestyleReport, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(entities.RestyleReport), args.Error(1)
}

func (m *MockPresentationService) ModifyAndSave(ctx context.Context, in, out string) (entities.RestyleReport, error) {
	args := m.Called(ctx, in, out)
	return args.Get(0).(entities.RestyleReport), args.Error(1)
}

func (m *MockPresentationService) FontFamily() string {
	return m.Called().String(0)
}

var _ ports.PresentationService = (*MockPresentationService)(nil)

func newTestSession(input string, service ports.PresentationService) (*Session, *bytes.Buffer) {
	out := new(bytes.Buffer)
	prompter := NewPrompter(strings.NewReader(input), out)
	return NewSession(prompter, service, entities.OutputConfig{}, nil), out
}

func TestSession_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		service := new(MockPresentationService)
		service.On("CreateAndSave", ctx, "deck.pptx").Return(entities.RestyleReport{Slides: 3}, nil)

		session, out := newTestSession("1\ndeck\n", service)
		require.NoError(t, session.Run(ctx))

		assert.Equal(t, ChoicePrompt+FilenamePrompt+"Presentation saved as deck.pptx\n", out.String())
		service.AssertExpectations(t)
	})

	t.Run("modify", func(t *testing.T) {
		service := new(MockPresentationService)
		service.On("ModifyAndSave", ctx, "deck.pptx", "deck_modified.pptx").Return(entities.RestyleReport{Slides: 3}, nil)
		service.On("FontFamily").Return("Times New Roman")

		session, out := newTestSession("2\ndeck\n", service)
		require.NoError(t, session.Run(ctx))

		assert.Equal(t,
			ChoicePrompt+FilenamePrompt+"Font and size changed to Times New Roman and saved as deck_modified.pptx\n",
			out.String())
		service.AssertExpectations(t)
	})

	t.Run("custom output names", func(t *testing.T) {
		service := new(MockPresentationService)
		service.On("ModifyAndSave", ctx, "deck.potx", "deck-restyled.potx").Return(entities.RestyleReport{}, nil)
		service.On("FontFamily").Return("Arial")

		out := new(bytes.Buffer)
		prompter := NewPrompter(strings.NewReader("2\ndeck\n"), out)
		session := NewSession(prompter, service, entities.OutputConfig{Extension: ".potx", ModifiedSuffix: "-restyled"}, nil)

		require.NoError(t, session.Run(ctx))
		assert.Contains(t, out.String(), "saved as deck-restyled.potx")
		service.AssertExpectations(t)
	})

	t.Run("invalid choice asks nothing else", func(t *testing.T) {
		service := new(MockPresentationService)

		session, out := newTestSession("3\ndeck\n", service)
		err := session.Run(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidChoice)
		assert.Contains(t, err.Error(), "3")
		assert.Equal(t, ChoicePrompt, out.String())
		service.AssertNotCalled(t, "CreateAndSave", mock.Anything, mock.Anything)
		service.AssertNotCalled(t, "ModifyAndSave", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blank filename", func(t *testing.T) {
		service := new(MockPresentationService)

		session, _ := newTestSession("1\n\n", service)
		err := session.Run(ctx)

		assert.ErrorIs(t, err, entities.ErrEmptyFilename)
		service.AssertNotCalled(t, "CreateAndSave", mock.Anything, mock.Anything)
	})

	t.Run("service error is returned without confirmation", func(t *testing.T) {
		service := new(MockPresentationService)
		service.On("ModifyAndSave", ctx, "missing.pptx", "missing_modified.pptx").
			Return(entities.RestyleReport{}, errors.New("loading presentation: file not found"))

		session, out := newTestSession("2\nmissing\n", service)
		err := session.Run(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading presentation")
		assert.NotContains(t, out.String(), "saved as")
	})
}

func TestSession_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	repo := pptx.NewRepository(ports.NewRealFileSystem(), nil)
	service := services.NewPresentationService(repo, nil, services.DefaultPresentationOptions(), nil)
	base := filepath.Join(dir, "deck")

	session, out := newTestSession("1\n"+base+"\n", service)
	require.NoError(t, session.Run(ctx))
	assert.Contains(t, out.String(), "Presentation saved as "+base+".pptx")

	session, out = newTestSession("2\n"+base+"\n", service)
	require.NoError(t, session.Run(ctx))
	assert.Contains(t, out.String(), "Font and size changed to Times New Roman and saved as "+base+"_modified.pptx")

	_, err := os.Stat(base + "_modified.pptx")
	require.NoError(t, err)

	deck, err := repo.Open(ctx, base+"_modified.pptx")
	require.NoError(t, err)
	require.Len(t, deck.Slides(), 3)
	assert.Equal(t, entities.DefaultSlides()[0].Title, deck.Slides()[0].Title().Text())
}
