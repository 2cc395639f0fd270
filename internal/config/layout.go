package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"vocabook/internal/domain"
)

const (
	vocaDirName     = "vocas"
	noteDirName     = "notes"
	favoriteDirName = "favorites"
	ledgerFileName  = "_favorites.txt"
	publicDirName   = "public"
	publicFileName  = "publics.txt"
	fileExt         = ".txt"
)

var userNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Layout maps a data root and user name to the files of that user
type Layout struct {
	Root string
	User string
}

// ValidateUser checks that the user name can be used as a directory name
func (l Layout) ValidateUser() error {
	if l.User == "" {
		return fmt.Errorf("user is required (set --user or VOCA_USER)")
	}
	if !userNamePattern.MatchString(l.User) || l.User == publicDirName {
		return fmt.Errorf("invalid user name %q", l.User)
	}
	return nil
}

// UserDir returns the directory holding all files of the user
func (l Layout) UserDir() string {
	return filepath.Join(l.Root, l.User)
}

// VocaDir returns the personal vocabulary directory
func (l Layout) VocaDir() string {
	return filepath.Join(l.UserDir(), vocaDirName)
}

// NoteDir returns the mistake note directory
func (l Layout) NoteDir() string {
	return filepath.Join(l.UserDir(), noteDirName)
}

// FavoriteDir returns the directory of the favorites ledger
func (l Layout) FavoriteDir() string {
	return filepath.Join(l.UserDir(), favoriteDirName)
}

// LedgerPath returns the favorites ledger file
func (l Layout) LedgerPath() string {
	return filepath.Join(l.FavoriteDir(), ledgerFileName)
}

// PublicDir returns the shared public vocabulary directory
func (l Layout) PublicDir() string {
	return filepath.Join(l.Root, publicDirName, vocaDirName)
}

// PublicPath returns the shared public vocabulary file
func (l Layout) PublicPath() string {
	return filepath.Join(l.PublicDir(), publicFileName)
}

// VocaPath returns a personal vocabulary file path
func (l Layout) VocaPath(name string) string {
	return filepath.Join(l.VocaDir(), withExt(name))
}

// NotePath returns a mistake note file path
func (l Layout) NotePath(name string) string {
	return filepath.Join(l.NoteDir(), withExt(name))
}

// ScanRoots returns the directories visited when stale markers are cleared
func (l Layout) ScanRoots() []domain.ScanRoot {
	return []domain.ScanRoot{
		{Dir: l.VocaDir(), Category: domain.CategoryPersonal},
		{Dir: l.NoteDir(), Category: domain.CategoryNote},
	}
}

// CategoryOf classifies a file path of this layout
func (l Layout) CategoryOf(path string) (domain.Category, error) {
	clean := filepath.Clean(path)
	switch {
	case clean == filepath.Clean(l.LedgerPath()):
		return domain.CategoryFavorites, nil
	case within(l.PublicDir(), clean):
		return domain.CategoryPublic, nil
	case within(l.NoteDir(), clean):
		return domain.CategoryNote, nil
	case within(l.VocaDir(), clean):
		return domain.CategoryPersonal, nil
	}
	return "", fmt.Errorf("%w: %s is not a vocabulary file of user %q", domain.ErrValidation, path, l.User)
}

// Resolve turns a command line target into a path and its category.
// Accepted forms: personal:<name>, note:<name>, public, favorites, or a file path.
func (l Layout) Resolve(target string) (string, domain.Category, error) {
	kind, name, hasName := strings.Cut(target, ":")
	switch {
	case kind == "public" && !hasName:
		return l.PublicPath(), domain.CategoryPublic, nil
	case kind == "favorites" && !hasName:
		return l.LedgerPath(), domain.CategoryFavorites, nil
	case kind == "personal" && hasName:
		if err := validFileName(name); err != nil {
			return "", "", err
		}
		return l.VocaPath(name), domain.CategoryPersonal, nil
	case kind == "note" && hasName:
		if err := validFileName(name); err != nil {
			return "", "", err
		}
		return l.NotePath(name), domain.CategoryNote, nil
	}

	category, err := l.CategoryOf(target)
	if err != nil {
		return "", "", err
	}
	return target, category, nil
}

func validFileName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: invalid file name %q", domain.ErrValidation, name)
	}
	return nil
}

func withExt(name string) string {
	if strings.HasSuffix(name, fileExt) {
		return name
	}
	return name + fileExt
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), path)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..") && !strings.Contains(rel, string(filepath.Separator))
}
