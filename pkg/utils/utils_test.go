package utils

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"
)

func imageHeader(size int64, contentType string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "photo.jpg",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	first, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 26 {
		t.Errorf("expected 26-character ULID, got %d characters", len(first))
	}

	second, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected distinct ULIDs")
	}
}

func TestValidateImageFile(t *testing.T) {
	u := New()

	if err := u.ValidateImageFile(imageHeader(1024, "image/jpeg")); err != nil {
		t.Errorf("valid image rejected: %v", err)
	}
	if err := u.ValidateImageFile(nil); err == nil {
		t.Error("expected an error for a nil file")
	}
	if err := u.ValidateImageFile(imageHeader(11*1024*1024, "image/jpeg")); err == nil {
		t.Error("expected an error for an oversized file")
	}
	if err := u.ValidateImageFile(imageHeader(1024, "application/pdf")); err == nil {
		t.Error("expected an error for a non-image file")
	}
}

func TestConvertFileToBase64(t *testing.T) {
	u := New()

	got, err := u.ConvertFileToBase64(nopFile{strings.NewReader("hello")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "aGVsbG8=" {
		t.Errorf("unexpected encoding: %q", got)
	}
}

type nopFile struct{ *strings.Reader }

func (nopFile) Close() error { return nil }
