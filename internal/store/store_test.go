package store

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestNew_CreatesBuckets(t *testing.T) {
	s := newTestStore(t)
	for _, dir := range []string{s.UploadsDir(), s.CodesDir(), s.LogosDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("bucket %s missing: %v", dir, err)
		}
	}
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"scan.jpg", true},
		{"scan.jpeg", true},
		{"report.pdf", true},
		{"report.PDF", true},
		{"script.exe", false},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Allowed(tt.name); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"my file.png", "my_file.png"},
		{"../../etc/passwd", "passwd"},
		{"we!rd$name.pdf", "we_rd_name.pdf"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveUpload(t *testing.T) {
	s := newTestStore(t)

	name, err := s.SaveUpload("my doc.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("SaveUpload() error: %v", err)
	}
	if name != "my_doc.pdf" {
		t.Errorf("stored name = %q, want %q", name, "my_doc.pdf")
	}

	data, err := os.ReadFile(filepath.Join(s.UploadsDir(), name))
	if err != nil {
		t.Fatalf("reading stored upload: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("stored content = %q", data)
	}
}

func TestCodeRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.WriteCode("x.png", []byte("png-bytes")); err != nil {
		t.Fatalf("WriteCode() error: %v", err)
	}
	data, err := s.ReadCode("x.png")
	if err != nil {
		t.Fatalf("ReadCode() error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("ReadCode() = %q", data)
	}

	if _, err := s.ReadCode("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadCode(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.RemoveCode("x.png"); err != nil {
		t.Fatalf("RemoveCode() error: %v", err)
	}
	if _, err := s.ReadCode("x.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadCode after remove error = %v, want ErrNotFound", err)
	}

	// Removing a missing artifact is not an error
	if err := s.RemoveCode("x.png"); err != nil {
		t.Errorf("RemoveCode(missing) error = %v", err)
	}
}

func TestZipCodes(t *testing.T) {
	s := newTestStore(t)

	if err := s.WriteCode("20240101120000.png", []byte("raster")); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteCode("20240101120000.svg", []byte("vector")); err != nil {
		t.Fatal(err)
	}

	data, err := s.ZipCodes("20240101120000")
	if err != nil {
		t.Fatalf("ZipCodes() error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("zip has %d entries, want 2", len(zr.File))
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["20240101120000.png"] || !names["20240101120000.svg"] {
		t.Errorf("zip entries = %v", names)
	}
}

func TestZipCodes_MissingHalf(t *testing.T) {
	s := newTestStore(t)

	// Only the raster exists: the pairing invariant is violated and the
	// export must refuse rather than produce a partial archive
	if err := s.WriteCode("pair.png", []byte("raster")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ZipCodes("pair"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ZipCodes missing svg error = %v, want ErrNotFound", err)
	}

	// And the same the other way around
	if err := s.RemoveCode("pair.png"); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteCode("pair.svg", []byte("vector")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ZipCodes("pair"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ZipCodes missing png error = %v, want ErrNotFound", err)
	}
}
