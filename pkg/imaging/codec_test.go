package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	return img
}

func TestDecodeDataURI(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(32, 24)); err != nil {
		t.Fatal(err)
	}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	img, err := Decode(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
		t.Errorf("expected 32x24, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecodeBareBase64(t *testing.T) {
	raw, err := EncodeJPEG(testImage(16, 16))
	if err != nil {
		t.Fatal(err)
	}

	img, err := Decode(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("expected 16x16, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecodeInvalidBase64(t *testing.T) {
	if _, err := Decode("data:image/png;base64,!!!not-base64!!!"); err == nil {
		t.Error("expected an error for invalid base64")
	}
}

func TestDecodeNotAnImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("definitely not pixels"))
	if _, err := Decode(payload); err == nil {
		t.Error("expected an error for non-image bytes")
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	_, err := Decode("data:image/png;base64,")
	if !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}

	_, err = Decode("")
	if !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("expected ErrEmptyPayload for empty string, got %v", err)
	}
}

func TestEncodeJPEGDeterministic(t *testing.T) {
	img := testImage(20, 20)

	first, err := EncodeJPEG(img)
	if err != nil {
		t.Fatal(err)
	}
	second, err := EncodeJPEG(img)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("expected identical bytes for identical input")
	}
}

func TestEncodeDataURIRoundTrip(t *testing.T) {
	uri, err := EncodeDataURI(testImage(40, 30))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected prefix: %.40s", uri)
	}

	img, err := Decode(uri)
	if err != nil {
		t.Fatalf("round trip decode failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("expected 40x30, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}
