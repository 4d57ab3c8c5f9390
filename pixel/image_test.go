package pixel

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestNewGray4Image(t *testing.T) {
	testCases := []struct {
		w, h    int
		wantErr bool
	}{
		{256, 64, false},
		{128, 64, false},
		{2, 1, false},
		{255, 64, true}, // odd width
		{0, 64, true},
		{256, 0, true},
		{-2, 64, true},
	}
	for _, test := range testCases {
		img, err := NewGray4Image(test.w, test.h, NoRotation)
		if test.wantErr {
			if err == nil {
				t.Errorf("expected error for %dx%d", test.w, test.h)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for %dx%d: %v", test.w, test.h, err)
			continue
		}
		if want := test.w / 2 * test.h; len(img.Bytes()) != want {
			t.Errorf("expected %d bytes for %dx%d, got %d", want, test.w, test.h, len(img.Bytes()))
		}
	}
}

func TestGray4ImageBounds(t *testing.T) {
	for _, test := range []struct {
		rotation Rotation
		want     image.Rectangle
	}{
		{NoRotation, image.Rect(0, 0, 256, 64)},
		{Rotate90, image.Rect(0, 0, 64, 256)},
		{Rotate180, image.Rect(0, 0, 256, 64)},
		{Rotate270, image.Rect(0, 0, 64, 256)},
	} {
		t.Run(test.rotation.String(), func(it *testing.T) {
			img, err := NewGray4Image(256, 64, test.rotation)
			if err != nil {
				it.Fatal(err)
			}
			if v := img.Bounds(); v != test.want {
				it.Errorf("expected bounds %v, got %v", test.want, v)
			}
			if v := img.ColorModel(); v != Gray4Model {
				it.Errorf("expected color model %T, got %T", Gray4Model, v)
			}
		})
	}
}

func TestGray4ImagePacking(t *testing.T) {
	img, err := NewGray4Image(8, 2, NoRotation)
	if err != nil {
		t.Fatal(err)
	}

	// Even column in the high nibble, odd column in the low nibble.
	if err = img.SetPixel(0, 0, 0xa); err != nil {
		t.Fatal(err)
	}
	if err = img.SetPixel(1, 0, 0xb); err != nil {
		t.Fatal(err)
	}
	if v := img.Bytes()[0]; v != 0xab {
		t.Errorf("expected first byte to be 0xab, got %#02x", v)
	}

	// Second row starts at the stride.
	if err = img.SetPixel(2, 1, 0xc); err != nil {
		t.Fatal(err)
	}
	if v := img.Bytes()[4+1]; v != 0xc0 {
		t.Errorf("expected byte 5 to be 0xc0, got %#02x", v)
	}

	// Levels are masked to 4 bits.
	if err = img.SetPixel(0, 0, 0xff); err != nil {
		t.Fatal(err)
	}
	if v, _ := img.Level(0, 0); v != 0xf {
		t.Errorf("expected masked level 0xf, got %#x", v)
	}
}

func TestGray4ImageSetPixelBounds(t *testing.T) {
	for _, rotation := range []Rotation{NoRotation, Rotate90, Rotate180, Rotate270} {
		t.Run(rotation.String(), func(it *testing.T) {
			img, err := NewGray4Image(16, 4, rotation)
			if err != nil {
				it.Fatal(err)
			}
			img.Fill(Gray4{Y: 0x3})
			snapshot := append([]byte(nil), img.Bytes()...)

			size := img.Bounds().Size()
			for _, p := range []image.Point{
				{X: size.X, Y: 0},
				{X: 0, Y: size.Y},
				{X: -1, Y: 0},
				{X: 0, Y: -1},
				{X: size.X, Y: size.Y},
			} {
				if err = img.SetPixel(p.X, p.Y, 0xf); !errors.Is(err, ErrBounds) {
					it.Errorf("expected ErrBounds at %v, got %v", p, err)
				}
				if _, err = img.Level(p.X, p.Y); !errors.Is(err, ErrBounds) {
					it.Errorf("expected ErrBounds reading %v, got %v", p, err)
				}
			}
			if !bytes.Equal(snapshot, img.Bytes()) {
				it.Error("out of bounds write modified the buffer")
			}
		})
	}
}

func TestGray4ImageRoundTrip(t *testing.T) {
	for _, rotation := range []Rotation{NoRotation, Rotate90, Rotate180, Rotate270} {
		t.Run(rotation.String(), func(it *testing.T) {
			img, err := NewGray4Image(16, 4, rotation)
			if err != nil {
				it.Fatal(err)
			}
			size := img.Bounds().Size()
			for level := uint8(0); level < 16; level++ {
				for y := 0; y < size.Y; y++ {
					for x := 0; x < size.X; x++ {
						if err = img.SetPixel(x, y, level); err != nil {
							it.Fatalf("SetPixel(%d,%d): %v", x, y, err)
						}
						if v, _ := img.Level(x, y); v != level {
							it.Fatalf("pixel (%d,%d) is %#x, expected %#x", x, y, v, level)
						}
					}
				}
			}
		})
	}
}

func TestGray4ImageFillClear(t *testing.T) {
	img, err := NewGray4Image(256, 64, NoRotation)
	if err != nil {
		t.Fatal(err)
	}

	img.Fill(Gray4{Y: 0xf})
	for _, b := range img.Bytes() {
		if b != 0xff {
			t.Fatalf("expected 0xff after fill, got %#02x", b)
		}
	}
	x, y := rand.Intn(256), rand.Intn(64)
	if v, _ := img.Level(x, y); v != 0xf {
		t.Errorf("pixel (%d,%d) is %#x after fill, expected 0xf", x, y, v)
	}

	img.Clear()
	for _, b := range img.Bytes() {
		if b != 0x00 {
			t.Fatalf("expected 0x00 after clear, got %#02x", b)
		}
	}
}

func TestGray4ImageDrawInterface(t *testing.T) {
	img, err := NewGray4Image(8, 4, NoRotation)
	if err != nil {
		t.Fatal(err)
	}

	img.Set(3, 2, color.White)
	if v := img.At(3, 2); v != (Gray4{Y: 0xf}) {
		t.Errorf("expected white pixel, got %#+v", v)
	}

	// Out of bounds access follows the draw.Image conventions.
	img.Set(-1, -1, color.White)
	if v := img.At(-1, -1); v != color.Transparent {
		t.Errorf("expected transparent out of bounds, got %#+v", v)
	}
}
