package pptx

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed all:template
var templateFS embed.FS

const templateRoot = "template"

// Blank returns a new presentation built from the embedded default template:
// a 4:3 deck with the "Title Slide" (0) and "Title and Content" (1) layouts and no slides.
func Blank() (*Presentation, error) {
	pkg := NewPackage()

	err := fs.WalkDir(templateFS, templateRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := templateFS.ReadFile(path)
		if err != nil {
			return err
		}
		pkg.SetPart(strings.TrimPrefix(path, templateRoot+"/"), data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading default template: %w", err)
	}

	return OpenPresentation(pkg)
}
