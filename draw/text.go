package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text draws s onto dst with the baseline starting at p. A nil face uses
// the fixed 7x13 basic font, which fits two lines on a 64 pixel panel.
func Text(dst Image, p image.Point, c color.Color, face font.Face, s string) {
	if face == nil {
		face = basicfont.Face7x13
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(p.X, p.Y),
	}
	d.DrawString(s)
}

// TextWidth returns the advance of s in pixels when drawn with face.
func TextWidth(face font.Face, s string) int {
	if face == nil {
		face = basicfont.Face7x13
	}
	return font.MeasureString(face, s).Ceil()
}

// ParseFontFace parses TrueType font data and returns a face at the given
// point size.
func ParseFontFace(ttf []byte, points float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
