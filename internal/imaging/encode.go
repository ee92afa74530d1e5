package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
)

// MimeTypePNG is the MIME type of everything this package encodes.
const MimeTypePNG = "image/png"

// EncodePNG serializes img as a lossless PNG. Alpha is preserved.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &EncodeError{Err: err}
	}
	return buf.Bytes(), nil
}

// EncodeBase64 serializes img as PNG and returns it in the standard base64
// alphabet, ready to embed in a JSON response.
func EncodeBase64(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
