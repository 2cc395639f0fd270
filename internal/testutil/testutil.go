package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vocabook/internal/config"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// Workspace is a throwaway data root for one test user
type Workspace struct {
	t      *testing.T
	Layout config.Layout
}

// NewWorkspace creates an empty data root under t.TempDir()
func NewWorkspace(t *testing.T, user string) *Workspace {
	t.Helper()
	return &Workspace{t: t, Layout: config.Layout{Root: t.TempDir(), User: user}}
}

// Write creates path with the given lines, each terminated by a newline
func (w *Workspace) Write(path string, lines ...string) string {
	w.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("mkdir %s: %v", path, err)
	}
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		w.t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Read returns the lines of path, or nil when it does not exist
func (w *Workspace) Read(path string) []string {
	w.t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		w.t.Fatalf("read %s: %v", path, err)
	}
	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return []string{}
	}
	return strings.Split(content, "\n")
}

// Personal writes a personal vocabulary file and returns its path
func (w *Workspace) Personal(name string, lines ...string) string {
	return w.Write(w.Layout.VocaPath(name), lines...)
}

// Note writes a mistake note file and returns its path
func (w *Workspace) Note(name string, lines ...string) string {
	return w.Write(w.Layout.NotePath(name), lines...)
}

// Public writes the shared public file and returns its path
func (w *Workspace) Public(lines ...string) string {
	return w.Write(w.Layout.PublicPath(), lines...)
}

// Ledger writes the favorites ledger and returns its path
func (w *Workspace) Ledger(lines ...string) string {
	return w.Write(w.Layout.LedgerPath(), lines...)
}
