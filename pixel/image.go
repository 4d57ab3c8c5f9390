package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/oledkit/ssd1322/draw"
)

// ErrBounds is returned by SetPixel and Level for coordinates outside the
// image bounds.
var ErrBounds = errors.New("pixel: coordinates out of bounds")

// Image is the drawing surface expected by the display driver.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Rotation defines the pixel rotation applied at write time.
//
// NoRotation and Rotate180 map coordinates straight into the panel's native
// row-major layout; the 180° turn is realized by the controller's remap
// setting. Rotate90 and Rotate270 swap the axes in software, so the image
// bounds are the panel's height × width; the additional half turn for
// Rotate270 again comes from the remap setting.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Swapped reports whether the rotation swaps the horizontal and vertical
// axes.
func (r Rotation) Swapped() bool {
	return r%2 == 1
}

// Buffer holds the packed pixel values.
type Buffer struct {
	// Rect is the bounding box in the panel's native orientation.
	Rect image.Rectangle

	// Pix are the packed pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

// Bytes exposes the backing storage without copying. The returned slice
// aliases the buffer; it must not be resized.
func (p *Buffer) Bytes() []byte {
	return p.Pix
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// Gray4Image is a 4-bits per pixel gray scale image in the SSD1322 packing:
// two horizontally adjacent pixels per byte, even column in the high nibble.
type Gray4Image struct {
	Buffer
	rotation Rotation
	rect     image.Rectangle // bounds as seen by the caller
}

// NewGray4Image returns an image backed by exactly w/2*h bytes, where w and
// h are the panel dimensions in its native orientation. The width must be
// even and both dimensions positive. For Rotate90 and Rotate270 the image
// bounds are h×w; writes are remapped into the native layout.
func NewGray4Image(w, h int, rotation Rotation) (*Gray4Image, error) {
	if w <= 0 || h <= 0 || w%2 != 0 {
		return nil, fmt.Errorf("pixel: invalid dimensions %dx%d: width must be even and both positive", w, h)
	}

	rect := image.Rect(0, 0, w, h)
	if rotation.Swapped() {
		rect = image.Rect(0, 0, h, w)
	}
	return &Gray4Image{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, w/2*h),
			Stride: w / 2,
		},
		rotation: rotation,
		rect:     rect,
	}, nil
}

func (p *Gray4Image) ColorModel() color.Model {
	return Gray4Model
}

// Bounds is the drawable area. It is the native panel rectangle transposed
// when the rotation swaps the axes.
func (p *Gray4Image) Bounds() image.Rectangle {
	return p.rect
}

// Rotation returns the rotation the image was created with.
func (p *Gray4Image) Rotation() Rotation {
	return p.rotation
}

// transform maps a coordinate in the caller's space onto the native
// row-major layout. The map is a bijection from Bounds() onto Rect for
// every rotation.
func (p *Gray4Image) transform(x, y int) (int, int) {
	if p.rotation.Swapped() {
		return p.Rect.Dx() - 1 - y, x
	}
	return x, y
}

// SetPixel writes a 4-bit gray level at (x, y) in the caller's space. Only
// the low 4 bits of level are used. Coordinates outside Bounds() return
// ErrBounds and leave the buffer unmodified.
func (p *Gray4Image) SetPixel(x, y int, level uint8) error {
	if !(image.Point{X: x, Y: y}).In(p.rect) {
		return ErrBounds
	}
	nx, ny := p.transform(x, y)
	index := ny*p.Stride + nx>>1
	if nx%2 == 0 {
		p.Pix[index] = (p.Pix[index] & 0x0f) | (level&0xf)<<4
	} else {
		p.Pix[index] = (p.Pix[index] & 0xf0) | level&0xf
	}
	return nil
}

// Level reads back the 4-bit gray level at (x, y) in the caller's space.
func (p *Gray4Image) Level(x, y int) (uint8, error) {
	if !(image.Point{X: x, Y: y}).In(p.rect) {
		return 0, ErrBounds
	}
	nx, ny := p.transform(x, y)
	index := ny*p.Stride + nx>>1
	if nx%2 == 0 {
		return p.Pix[index] >> 4, nil
	}
	return p.Pix[index] & 0xf, nil
}

func (p *Gray4Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.rect) {
		return color.Transparent
	}
	level, _ := p.Level(x, y)
	return Gray4{Y: level}
}

// Set implements [draw.Image]; out of bounds writes are silently clipped.
func (p *Gray4Image) Set(x, y int, c color.Color) {
	_ = p.SetPixel(x, y, gray4Model(c).(Gray4).Y)
}

// Fill sets every pixel to the same color.
func (p *Gray4Image) Fill(c color.Color) {
	value := gray4Model(c).(Gray4).Y & 0xf
	value |= value << 4
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Interface checks
var (
	_ Image       = (*Gray4Image)(nil)
	_ image.Image = (*Gray4Image)(nil)
)
