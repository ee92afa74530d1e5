package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestDominantColors_Solid(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{255, 255, 255, 255})

	colors := DominantColors(img, 5)
	if len(colors) != 1 {
		t.Fatalf("expected 1 color, got %d", len(colors))
	}
	if colors[0].Percentage != 100 {
		t.Errorf("Percentage: got %f, want 100", colors[0].Percentage)
	}
	// 255 quantizes to 240
	if colors[0].Hex != "#F0F0F0" {
		t.Errorf("Hex: got %s, want #F0F0F0", colors[0].Hex)
	}
	if colors[0].HSL.S != 0 {
		t.Errorf("gray should have zero saturation, got %d", colors[0].HSL.S)
	}
}

func TestDominantColors_Ordering(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.NRGBA{255, 0, 0, 255}
			if x >= 7 {
				c = color.NRGBA{0, 0, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	colors := DominantColors(img, 5)
	if len(colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(colors))
	}
	if colors[0].RGB != (RGBColor{240, 0, 0}) || colors[0].Percentage != 70 {
		t.Errorf("first color: got %+v, want red at 70%%", colors[0])
	}
	if colors[1].RGB != (RGBColor{0, 0, 240}) || colors[1].Percentage != 30 {
		t.Errorf("second color: got %+v, want blue at 30%%", colors[1])
	}
	if colors[0].HSL.H != 0 || colors[1].HSL.H != 240 {
		t.Errorf("hues: got %d and %d, want 0 and 240", colors[0].HSL.H, colors[1].HSL.H)
	}
}

func TestDominantColors_Limit(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{64, 0, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{128, 0, 0, 255})
	img.SetNRGBA(3, 0, color.NRGBA{192, 0, 0, 255})

	if got := DominantColors(img, 2); len(got) != 2 {
		t.Errorf("expected 2 colors with limit, got %d", len(got))
	}
	if got := DominantColors(img, 0); len(got) != 4 {
		t.Errorf("expected all 4 colors without limit, got %d", len(got))
	}
}

func TestDominantColors_TransparentIsBlack(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 0})

	colors := DominantColors(img, 5)
	if len(colors) != 1 || colors[0].Hex != "#000000" {
		t.Errorf("expected only black, got %+v", colors)
	}
}

func TestDominantColors_Empty(t *testing.T) {
	if got := DominantColors(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 5); got != nil {
		t.Errorf("expected nil for empty image, got %v", got)
	}
}
