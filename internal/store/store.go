// Package store is the filesystem artifact store. It owns three buckets under
// one data directory: uploads (user files referenced by QR payloads), qrcodes
// (generated PNG/SVG pairs), and logos (overlay images).
package store

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a requested artifact does not exist
var ErrNotFound = errors.New("artifact not found")

// allowedExtensions mirrors the upload filter: images plus PDF
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// Store persists named byte blobs under a root directory
type Store struct {
	root string
}

// New creates the store and its bucket directories
func New(root string) (*Store, error) {
	s := &Store{root: root}
	for _, dir := range []string{s.UploadsDir(), s.CodesDir(), s.LogosDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", dir, err)
		}
	}
	return s, nil
}

// UploadsDir returns the uploads bucket path
func (s *Store) UploadsDir() string { return filepath.Join(s.root, "uploads") }

// CodesDir returns the generated-codes bucket path
func (s *Store) CodesDir() string { return filepath.Join(s.root, "qrcodes") }

// LogosDir returns the logos bucket path
func (s *Store) LogosDir() string { return filepath.Join(s.root, "logos") }

// Allowed reports whether the filename's extension is in the allowed set
func Allowed(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// SanitizeFilename strips path components and any character outside
// [A-Za-z0-9._-] so uploaded names are safe to use on disk
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// SaveUpload stores an uploaded file and returns the sanitized name it was
// stored under
func (s *Store) SaveUpload(name string, r io.Reader) (string, error) {
	return s.save(s.UploadsDir(), name, r)
}

// SaveLogo stores a logo image and returns the sanitized name
func (s *Store) SaveLogo(name string, r io.Reader) (string, error) {
	return s.save(s.LogosDir(), name, r)
}

func (s *Store) save(dir, name string, r io.Reader) (string, error) {
	name = SanitizeFilename(name)
	if name == "" || name == "." {
		return "", errors.New("empty filename")
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// WriteCode persists a generated artifact into the codes bucket
func (s *Store) WriteCode(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(s.CodesDir(), name), data, 0o644); err != nil {
		return fmt.Errorf("write code %s: %w", name, err)
	}
	return nil
}

// ReadCode reads a generated artifact, returning ErrNotFound when absent
func (s *Store) ReadCode(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.CodesDir(), name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read code %s: %w", name, err)
	}
	return data, nil
}

// RemoveCode deletes a generated artifact; missing files are not an error
func (s *Store) RemoveCode(name string) error {
	err := os.Remove(filepath.Join(s.CodesDir(), name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove code %s: %w", name, err)
	}
	return nil
}

// ZipCodes packages the PNG and SVG halves of an artifact pair into a single
// in-memory ZIP. Both halves must exist: a missing half means the pairing
// invariant was violated and the export is refused with ErrNotFound.
func (s *Store) ZipCodes(id string) ([]byte, error) {
	pngData, err := s.ReadCode(id + ".png")
	if err != nil {
		return nil, err
	}
	svgData, err := s.ReadCode(id + ".svg")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct {
		name string
		data []byte
	}{
		{id + ".png", pngData},
		{id + ".svg", svgData},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}
