package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func encodeWith(t *testing.T, img image.Image, format string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestDecode_Formats(t *testing.T) {
	src := createInMemoryImage(40, 30, color.NRGBA{200, 100, 50, 255})

	for _, format := range []string{"png", "jpeg", "gif"} {
		t.Run(format, func(t *testing.T) {
			data := encodeWith(t, src, format)

			img, info, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
				t.Errorf("dimensions: got %dx%d, want 40x30", img.Bounds().Dx(), img.Bounds().Dy())
			}
			if info.Format != format {
				t.Errorf("Format: got %s, want %s", info.Format, format)
			}
			if info.SizeBytes != len(data) {
				t.Errorf("SizeBytes: got %d, want %d", info.SizeBytes, len(data))
			}
		})
	}
}

func TestDecode_Info(t *testing.T) {
	translucent := image.NewNRGBA(image.Rect(0, 0, 10, 20))
	translucent.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 4})
	data := encodeWith(t, translucent, "png")

	_, info, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := &ImageInfo{
		Width:      10,
		Height:     20,
		Format:     "png",
		ColorDepth: "8-bit",
		HasAlpha:   true,
		SizeBytes:  len(data),
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("ImageInfo mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_SixteenBit(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 4, 4))
	_, info, err := Decode(encodeWith(t, img, "png"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if info.ColorDepth != "16-bit" {
		t.Errorf("ColorDepth: got %s, want 16-bit", info.ColorDepth)
	}
	if info.HasAlpha {
		t.Error("grayscale image should not report alpha")
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not an image")},
		{"truncated png", encodeWith(t, createInMemoryImage(8, 8, color.White), "png")[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, info, err := Decode(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if img != nil || info != nil {
				t.Error("expected nil image and info on error")
			}
		})
	}
}
