package entities

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// Alignment is the horizontal alignment of a paragraph
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

var alignmentToOOXML = map[Alignment]string{
	AlignLeft:    "l",
	AlignCenter:  "ctr",
	AlignRight:   "r",
	AlignJustify: "just",
}

// ParseAlignment accepts either the readable name or the DrawingML token
func ParseAlignment(s string) (Alignment, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for a, token := range alignmentToOOXML {
		if v == string(a) || v == token {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown alignment: %q", s)
}

// OOXML returns the value of the a:pPr algn attribute
func (a Alignment) OOXML() string {
	return alignmentToOOXML[a]
}

// IsValid reports whether a is one of the known alignments
func (a Alignment) IsValid() bool {
	_, ok := alignmentToOOXML[a]
	return ok
}

// RGBColor is a 24-bit sRGB color
type RGBColor [3]byte

// Black is the color every restyled run ends up with by default
var Black = RGBColor{0, 0, 0}

// ParseRGBColor parses "RRGGBB" with an optional leading '#'
func ParseRGBColor(s string) (RGBColor, error) {
	var c RGBColor
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) != 6 {
		return c, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	b, err := hex.DecodeString(v)
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	copy(c[:], b)
	return c, nil
}

// Hex returns the upper-case RRGGBB form used by a:srgbClr
func (c RGBColor) Hex() string {
	return strings.ToUpper(hex.EncodeToString(c[:]))
}

// Points is a font size in typographic points
type Points float64

// Centipoints returns the size in hundredths of a point, as stored in a:rPr sz
func (p Points) Centipoints() int {
	return int(math.Round(float64(p) * 100))
}

// PointsFromCentipoints converts an sz attribute value back to points
func PointsFromCentipoints(v int) Points {
	return Points(float64(v) / 100)
}

// TextStyle is the set of overrides applied to every run of a shape
type TextStyle struct {
	FontFamily string
	Size       Points
	Color      RGBColor
	Alignment  Alignment
}

// StyleProfile holds the styles for title placeholders and for everything else
type StyleProfile struct {
	Title   TextStyle
	Content TextStyle
}

// DefaultStyleProfile returns Times New Roman in black, 36pt centered titles and 32pt left-aligned content
func DefaultStyleProfile() StyleProfile {
	return StyleProfile{
		Title: TextStyle{
			FontFamily: DefaultFontFamily,
			Size:       DefaultTitleSize,
			Color:      Black,
			Alignment:  AlignCenter,
		},
		Content: TextStyle{
			FontFamily: DefaultFontFamily,
			Size:       DefaultContentSize,
			Color:      Black,
			Alignment:  AlignLeft,
		},
	}
}

const (
	DefaultFontFamily  = "Times New Roman"
	DefaultTitleSize   = Points(36)
	DefaultContentSize = Points(32)
)
