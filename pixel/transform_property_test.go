package pixel

import (
	"testing"

	"pgregory.net/rapid"
)

func rotationGen() *rapid.Generator[Rotation] {
	return rapid.SampledFrom([]Rotation{NoRotation, Rotate90, Rotate180, Rotate270})
}

// TestTransformBijection verifies that the write-time coordinate transform
// maps the drawable grid one-to-one onto the native grid: no two distinct
// coordinates share a buffer offset and every offset is reachable. A
// non-bijective transform would silently drop or duplicate pixel writes.
func TestTransformBijection(t *testing.T) {
	for _, rotation := range []Rotation{NoRotation, Rotate90, Rotate180, Rotate270} {
		t.Run(rotation.String(), func(it *testing.T) {
			for _, size := range []struct{ w, h int }{
				{8, 4},
				{64, 32},
				{256, 64},
			} {
				img, err := NewGray4Image(size.w, size.h, rotation)
				if err != nil {
					it.Fatal(err)
				}

				bounds := img.Bounds()
				seen := make(map[[2]int]bool, size.w*size.h)
				for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
					for x := bounds.Min.X; x < bounds.Max.X; x++ {
						nx, ny := img.transform(x, y)
						if nx < 0 || nx >= size.w || ny < 0 || ny >= size.h {
							it.Fatalf("(%d,%d) maps outside the native grid: (%d,%d)", x, y, nx, ny)
						}
						key := [2]int{nx, ny}
						if seen[key] {
							it.Fatalf("(%d,%d) collides on native pixel (%d,%d)", x, y, nx, ny)
						}
						seen[key] = true
					}
				}
				if len(seen) != size.w*size.h {
					it.Fatalf("expected %d reachable pixels, got %d", size.w*size.h, len(seen))
				}
			}
		})
	}
}

// TestRandomWritesReadBack drives a random sequence of pixel writes and
// checks that the last written level always wins, for every rotation.
func TestRandomWritesReadBack(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rotation := rotationGen().Draw(rt, "rotation")
		img, err := NewGray4Image(32, 16, rotation)
		if err != nil {
			rt.Fatal(err)
		}

		size := img.Bounds().Size()
		want := make(map[[2]int]uint8)
		n := rapid.IntRange(1, 256).Draw(rt, "writes")
		for i := 0; i < n; i++ {
			x := rapid.IntRange(0, size.X-1).Draw(rt, "x")
			y := rapid.IntRange(0, size.Y-1).Draw(rt, "y")
			level := uint8(rapid.IntRange(0, 15).Draw(rt, "level"))
			if err = img.SetPixel(x, y, level); err != nil {
				rt.Fatalf("SetPixel(%d,%d): %v", x, y, err)
			}
			want[[2]int{x, y}] = level
		}

		for key, level := range want {
			v, err := img.Level(key[0], key[1])
			if err != nil {
				rt.Fatal(err)
			}
			if v != level {
				rt.Fatalf("pixel (%d,%d) is %#x, expected %#x", key[0], key[1], v, level)
			}
		}
	})
}
