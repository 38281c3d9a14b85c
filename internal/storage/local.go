package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrOutsideRoot = errors.New("path escapes upload root")
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// LocalStorage keeps uploaded files under <root>/<player id>/<name>.
type LocalStorage struct {
	rootDir string
}

// NewLocalStorage creates the root directory if needed.
func NewLocalStorage(rootDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{rootDir: rootDir}, nil
}

// SecureFilename reduces name to a safe ASCII base name.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	return name
}

// FileType returns the lower-case extension of name, or "unknown".
func FileType(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "unknown"
	}
	return strings.ToLower(ext)
}

// Save writes content to the player's folder and returns the relative path.
// An existing file with the same name is replaced.
func (s *LocalStorage) Save(playerID uint, name string, content io.Reader) (string, error) {
	safe := SecureFilename(name)
	if safe == "" {
		return "", ErrInvalidName
	}

	dir := filepath.Join(s.rootDir, strconv.FormatUint(uint64(playerID), 10))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create player directory: %w", err)
	}

	full := filepath.Join(dir, safe)
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(strconv.FormatUint(uint64(playerID), 10), safe)), nil
}

// Path resolves a stored relative path to an absolute location under the root.
func (s *LocalStorage) Path(rel string) (string, error) {
	root, err := filepath.Abs(s.rootDir)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(rel))
	if full != root && !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *LocalStorage) Remove(rel string) error {
	full, err := s.Path(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
