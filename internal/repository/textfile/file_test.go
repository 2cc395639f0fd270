package textfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"vocabook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepo_ReadLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "unix endings",
			content:  "apple\t사과\nbanana\t바나나\n",
			expected: []string{"apple\t사과", "banana\t바나나"},
		},
		{
			name:     "windows endings",
			content:  "apple\t사과\r\nbanana\t바나나\r\n",
			expected: []string{"apple\t사과", "banana\t바나나"},
		},
		{
			name:     "no trailing newline",
			content:  "apple\t사과",
			expected: []string{"apple\t사과"},
		},
		{
			name:     "empty file",
			content:  "",
			expected: []string{},
		},
		{
			name:     "blank line in the middle is kept",
			content:  "apple\t사과\n\nbanana\t바나나\n",
			expected: []string{"apple\t사과", "", "banana\t바나나"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "voca.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			lines, err := NewFileRepo().ReadLines(path)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, lines)
		})
	}
}

func TestFileRepo_ReadLines_Missing(t *testing.T) {
	lines, err := NewFileRepo().ReadLines(filepath.Join(t.TempDir(), "nope.txt"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, lines)
}

func TestFileRepo_WriteLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alice", "vocas", "voca.txt")
	repo := NewFileRepo()

	require.NoError(t, repo.WriteLines(path, []string{"apple\t사과", "*banana\t바나나"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "apple\t사과\n*banana\t바나나\n", string(data))

	// overwrite truncates the previous content
	require.NoError(t, repo.WriteLines(path, []string{"cherry\t체리"}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cherry\t체리\n", string(data))

	// no temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileRepo_WriteLines_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voca.txt")
	repo := NewFileRepo()
	lines := []string{"apple\t사과", "broken", "banana*\t바나나"}

	require.NoError(t, repo.WriteLines(path, lines))
	got, err := repo.ReadLines(path)

	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestFileRepo_WriteLines_Unwritable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	defer os.Chmod(dir, 0o755)

	err := NewFileRepo().WriteLines(filepath.Join(dir, "voca.txt"), []string{"apple\t사과"})

	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestFileRepo_ListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "notes.md", ".voca-123.tmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	paths, err := NewFileRepo().ListFiles(dir, "*.txt")

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}, paths)
}

func TestFileRepo_ListFiles_MissingDir(t *testing.T) {
	_, err := NewFileRepo().ListFiles(filepath.Join(t.TempDir(), "missing"), "*.txt")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
