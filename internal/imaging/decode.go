package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageInfo contains metadata about a decoded tile payload.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the decoder: "png", "jpeg",
	// "gif" or "webp". Detection is based on the payload's magic bytes.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the length of the raw payload that was decoded.
	SizeBytes int `json:"size_bytes"`
}

// Decode parses an encoded image payload and describes it.
//
// Parameters:
//   - data: Raw bytes as received from the tile source. Supported formats
//     are PNG, JPEG, GIF and WebP.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the format
//     and color model (e.g., *image.NRGBA, *image.Paletted, *image.YCbCr).
//   - *ImageInfo: Dimensions, format and color characteristics.
//   - error: Non-nil if the payload is empty or not a supported format.
func Decode(data []byte) (image.Image, *ImageInfo, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("failed to decode image: empty payload")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.NYCbCrA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return img, &ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     format,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
		SizeBytes:  len(data),
	}, nil
}
