// Package imaging converts between browser-style base64 image payloads and
// decoded rasters.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/png"
)

const dataURIPrefix = "data:image/jpeg;base64,"

// Fixed quality keeps re-encoding deterministic for identical input.
const jpegQuality = 90

var ErrEmptyPayload = errors.New("empty image payload")

// DecodeBase64 strips an optional data-URI media-type prefix (everything up
// to and including the first comma) and base64-decodes the remainder.
func DecodeBase64(data string) ([]byte, error) {
	if idx := strings.Index(data, ","); idx != -1 {
		data = data[idx+1:]
	}
	if data == "" {
		return nil, ErrEmptyPayload
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return raw, nil
}

// DecodeImage decodes raw JPEG or PNG bytes into a raster image.
func DecodeImage(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image bytes: %w", err)
	}
	return img, nil
}

// Decode runs DecodeBase64 and DecodeImage in one step.
func Decode(data string) (image.Image, error) {
	raw, err := DecodeBase64(data)
	if err != nil {
		return nil, err
	}
	return DecodeImage(raw)
}

// EncodeJPEG compresses an image with the fixed quality setting.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI wraps already-encoded JPEG bytes in a data URI.
func DataURI(raw []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(raw)
}

// EncodeDataURI produces a JPEG data URI for an image.
func EncodeDataURI(img image.Image) (string, error) {
	raw, err := EncodeJPEG(img)
	if err != nil {
		return "", err
	}
	return DataURI(raw), nil
}
