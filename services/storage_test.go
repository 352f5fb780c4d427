package services

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

const maxUpload = 5 * 1024 * 1024

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   make(textproto.MIMEHeader),
	}
	if contentType != "" {
		h.Header.Set("Content-Type", contentType)
	}
	return h
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name   string
		header *multipart.FileHeader
		wantOK bool
	}{
		{"nil header", nil, false},
		{"empty file", fileHeader("a.jpg", "image/jpeg", 0), false},
		{"jpeg at limit", fileHeader("a.jpg", "image/jpeg", maxUpload), true},
		{"jpeg over limit", fileHeader("a.jpg", "image/jpeg", maxUpload+1), false},
		{"png", fileHeader("b.png", "image/png", 1024), true},
		{"webp", fileHeader("c.webp", "image/webp", 1024), true},
		{"pdf rejected", fileHeader("doc.pdf", "application/pdf", 1024), false},
		{"text rejected", fileHeader("notes.txt", "text/plain", 10), false},
		{"no content type, image extension", fileHeader("d.jpeg", "", 1024), true},
		{"no content type, exe extension", fileHeader("evil.exe", "", 1024), false},
	}

	for _, tt := range tests {
		reason, ok := ValidateImageFile(tt.header, maxUpload)
		if ok != tt.wantOK {
			t.Fatalf("%s: ok = %v (reason %q), want %v", tt.name, ok, reason, tt.wantOK)
		}
		if !ok && reason == "" {
			t.Fatalf("%s: rejection must carry a reason", tt.name)
		}
	}
}
