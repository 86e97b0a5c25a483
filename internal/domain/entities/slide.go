package entities

import (
	"errors"
	"strconv"
	"strings"
)

// SlideContent is the input record for a generated slide
type SlideContent struct {
	// Title is written into the slide's title placeholder
	Title string `yaml:"title" toml:"title" json:"title"`

	// Content is written into the body placeholder; newlines start new paragraphs
	Content string `yaml:"content" toml:"content" json:"content"`
}

// Validate ensures the record carries some text.
// Creation itself never calls it: empty records produce empty placeholders.
func (s SlideContent) Validate() error {
	if strings.TrimSpace(s.Title) == "" && strings.TrimSpace(s.Content) == "" {
		return errors.New("slide must have a title or content")
	}
	return nil
}

// Paragraphs returns the content split into the paragraphs it will occupy
func (s SlideContent) Paragraphs() []string {
	return strings.Split(s.Content, "\n")
}

// DefaultSlides returns the demo deck written by create mode when no slides are configured
func DefaultSlides() []SlideContent {
	slides := make([]SlideContent, 0, 3)
	for i := 1; i <= 3; i++ {
		n := strconv.Itoa(i)
		slides = append(slides, SlideContent{
			Title:   "Title " + n,
			Content: "Content for slide " + n,
		})
	}
	return slides
}
