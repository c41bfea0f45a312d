package blob_test

import (
	"strings"
	"testing"

	"github.com/Oxyrus/keepsake/internal/blob"
)

func TestNewKeyIsOwnerNamespaced(t *testing.T) {
	key := blob.NewKey("photos", 42, "sunset.png")

	if !strings.HasPrefix(key, "photos/42/") {
		t.Fatalf("expected owner-namespaced key, got %q", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("expected original extension, got %q", key)
	}
}

func TestNewKeyIsUniquePerCall(t *testing.T) {
	a := blob.NewKey("photos", 7, "same.jpg")
	b := blob.NewKey("photos", 7, "same.jpg")

	if a == b {
		t.Fatalf("expected distinct keys for identical inputs, got %q twice", a)
	}
}

func TestNewKeyExtension(t *testing.T) {
	cases := []struct {
		filename string
		suffix   string
	}{
		{"photo.JPG", ".jpg"},
		{"archive.tar.png", ".png"},
		{"noextension", ".jpg"},
		{"trailingdot.", ".jpg"},
		{"", ".jpg"},
	}

	for _, tc := range cases {
		key := blob.NewKey("photos", 1, tc.filename)
		if !strings.HasSuffix(key, tc.suffix) {
			t.Fatalf("NewKey(%q): expected suffix %q, got %q", tc.filename, tc.suffix, key)
		}
	}
}
