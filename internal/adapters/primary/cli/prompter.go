package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
)

const (
	ChoicePrompt   = "Enter \n1 to create a new presentation or\n2 to adjust the size of the presentation: "
	FilenamePrompt = "Enter the filename: "
)

// Mode choices accepted by the first prompt
const (
	ChoiceCreate = 1
	ChoiceModify = 2
)

// Prompter asks the interactive questions and prints results
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	success lipgloss.Style
}

// NewPrompter creates a prompter reading answers from in and writing to out.
// Styling is dropped automatically when out is not a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	renderer := lipgloss.NewRenderer(out)
	return &Prompter{
		in:      bufio.NewReader(in),
		out:     out,
		success: renderer.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true),
	}
}

// Choice asks for the mode and returns the number entered
func (p *Prompter) Choice() (int, error) {
	answer, err := p.ask(ChoicePrompt)
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", entities.ErrInvalidChoice, answer)
	}
	return choice, nil
}

// Filename asks for the base name of the presentation, without extension
func (p *Prompter) Filename() (string, error) {
	answer, err := p.ask(FilenamePrompt)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", entities.ErrEmptyFilename
	}
	return answer, nil
}

// Success prints a confirmation line
func (p *Prompter) Success(msg string) {
	_, _ = fmt.Fprintln(p.out, p.success.Render(msg))
}

// ask writes the prompt and reads one line. A final line without newline is accepted.
func (p *Prompter) ask(prompt string) (string, error) {
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errors.New("no input: expected an answer")
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
