package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vocabook/internal/domain"

	"github.com/bmatcuk/doublestar/v4"
)

const tempPattern = ".voca-*.tmp"

// FileRepo implements repository.FileRepository on UTF-8 text files
type FileRepo struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewFileRepo creates a new text file repository
func NewFileRepo() *FileRepo {
	return &FileRepo{dirPerm: 0o755, filePerm: 0o644}
}

// ReadLines reads all lines of path
func (r *FileRepo) ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}, nil
	}
	return strings.Split(content, "\n"), nil
}

// WriteLines writes lines to a temporary file next to path and renames it over path,
// so readers never observe a half-written file
func (r *FileRepo) WriteLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, r.dirPerm); err != nil {
		return fmt.Errorf("%w: create directory %s: %v", domain.ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("%w: create temp file for %s: %v", domain.ErrIO, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: write %s: %v", domain.ErrIO, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", domain.ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrIO, path, err)
	}
	if err := os.Chmod(tmpName, r.filePerm); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", domain.ErrIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", domain.ErrIO, path, err)
	}
	return nil
}

// ListFiles returns files directly in dir whose names match pattern, sorted by name
func (r *FileRepo) ListFiles(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrNotFound, dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(matches)

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	return paths, nil
}
