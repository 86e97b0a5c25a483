package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want Alignment
	}{
		{"left", AlignLeft},
		{"l", AlignLeft},
		{"Center", AlignCenter},
		{"ctr", AlignCenter},
		{" right ", AlignRight},
		{"just", AlignJustify},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlignment(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAlignment("middle")
	assert.Error(t, err)
}

func TestAlignment_OOXML(t *testing.T) {
	assert.Equal(t, "ctr", AlignCenter.OOXML())
	assert.Equal(t, "l", AlignLeft.OOXML())
	assert.True(t, AlignRight.IsValid())
	assert.False(t, Alignment("dist").IsValid())
}

func TestParseRGBColor(t *testing.T) {
	c, err := ParseRGBColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, RGBColor{0xFF, 0x80, 0x00}, c)
	assert.Equal(t, "FF8000", c.Hex())

	c, err = ParseRGBColor("000000")
	require.NoError(t, err)
	assert.Equal(t, Black, c)

	_, err = ParseRGBColor("fff")
	assert.Error(t, err)

	_, err = ParseRGBColor("zzzzzz")
	assert.Error(t, err)
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 3600, Points(36).Centipoints())
	assert.Equal(t, 1050, Points(10.5).Centipoints())
	assert.Equal(t, Points(32), PointsFromCentipoints(3200))
}

func TestDefaultStyleProfile(t *testing.T) {
	p := DefaultStyleProfile()

	assert.Equal(t, "Times New Roman", p.Title.FontFamily)
	assert.Equal(t, "Times New Roman", p.Content.FontFamily)
	assert.Equal(t, Points(36), p.Title.Size)
	assert.Equal(t, Points(32), p.Content.Size)
	assert.Equal(t, AlignCenter, p.Title.Alignment)
	assert.Equal(t, AlignLeft, p.Content.Alignment)
	assert.Equal(t, Black, p.Title.Color)
	assert.Equal(t, Black, p.Content.Color)
}
