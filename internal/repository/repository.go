package repository

// FileRepository defines raw line storage operations
type FileRepository interface {
	// ReadLines returns the lines of path; a missing file yields domain.ErrNotFound.
	ReadLines(path string) ([]string, error)
	// WriteLines replaces the content of path with lines, creating parent directories.
	WriteLines(path string, lines []string) error
	// ListFiles returns paths of files in dir matching pattern; a missing dir yields domain.ErrNotFound.
	ListFiles(dir, pattern string) ([]string, error)
}
