package upload

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
)

func header(name, mime string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	if mime != "" {
		h.Set("Content-Type", mime)
	}
	return &multipart.FileHeader{
		Filename: name,
		Header:   h,
		Size:     size,
	}
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		file     *multipart.FileHeader
		allowGIF bool
		wantErr  error
	}{
		{
			name: "png accepted",
			file: header("logo.png", "image/png", 1024),
		},
		{
			name: "jpeg accepted",
			file: header("photo.JPG", "image/jpeg", 1024),
		},
		{
			name:     "gif accepted for banners",
			file:     header("promo.gif", "image/gif", 1024),
			allowGIF: true,
		},
		{
			name:    "gif rejected elsewhere",
			file:    header("promo.gif", "image/gif", 1024),
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "pdf rejected",
			file:    header("doc.pdf", "application/pdf", 1024),
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "oversize rejected",
			file:    header("big.png", "image/png", MaxImageSize+1),
			wantErr: ErrTooLarge,
		},
		{
			name:    "mime mismatch rejected",
			file:    header("sneaky.png", "text/html", 1024),
			wantErr: ErrUnsupportedType,
		},
		{
			name: "missing mime falls back to extension",
			file: header("logo.png", "", 1024),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.file, tt.allowGIF)
			if err != tt.wantErr {
				t.Errorf("ValidateImage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUniqueName(t *testing.T) {
	got := UniqueName("category", "My Logo.PNG")
	if strings.Contains(got, " ") {
		t.Errorf("UniqueName() kept spaces: %q", got)
	}
	if !strings.HasPrefix(got, "category-") {
		t.Errorf("UniqueName() missing prefix: %q", got)
	}
	if !strings.HasSuffix(got, ".png") {
		t.Errorf("UniqueName() should lowercase extension: %q", got)
	}

	other := UniqueName("category", "My Logo.PNG")
	if got == other {
		t.Errorf("UniqueName() produced identical names %q", got)
	}
}
