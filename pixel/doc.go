// Package pixel implements the packed 4-bit grayscale image used as the
// SSD1322 framebuffer.
//
// The image format is compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, so any 2D graphics library that
// renders into a [draw.Image] can render into the framebuffer directly.
package pixel
