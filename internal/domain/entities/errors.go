package entities

import "errors"

var (
	// ErrInvalidChoice is returned when the mode prompt gets a number other than 1 or 2
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrEmptyFilename is returned when the filename prompt gets a blank answer
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrNotPresentation is returned when a file is not a PresentationML package
	ErrNotPresentation = errors.New("not a presentation")

	// ErrLayoutNotFound is returned when a slide layout index is out of range
	ErrLayoutNotFound = errors.New("slide layout not found")

	// ErrPlaceholderNotFound is returned when a slide has no placeholder with the requested idx
	ErrPlaceholderNotFound = errors.New("placeholder not found")
)
