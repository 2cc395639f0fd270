package config

import (
	"os"
	"path/filepath"
	"testing"

	"vocabook/internal/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithDefaults(t *testing.T) {
	t.Setenv("VOCA_DATA_DIR", "")
	t.Setenv("VOCA_USER", "")
	t.Setenv("VOCA_LOG_LEVEL", "")

	cfg, err := Load(viper.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "res", cfg.DataDir)
	assert.Equal(t, "", cfg.User)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("VOCA_DATA_DIR", "/tmp/voca")
	t.Setenv("VOCA_USER", "alice")
	t.Setenv("VOCA_LOG_LEVEL", "debug")
	t.Setenv("VOCA_LOG_MAX_BACKUPS", "7")

	cfg, err := Load(viper.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/voca", cfg.DataDir)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
}

func TestLoad_FromConfigFile(t *testing.T) {
	t.Setenv("VOCA_USER", "")
	path := filepath.Join(t.TempDir(), "voca.yaml")
	content := "data_dir: /srv/voca\nuser: bob\noutput: yaml\nlog:\n  level: warn\n  file: /var/log/voca.log\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(viper.New(), path)

	require.NoError(t, err)
	assert.Equal(t, "/srv/voca", cfg.DataDir)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/var/log/voca.log", cfg.Log.File)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	cfg, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidOutput(t *testing.T) {
	t.Setenv("VOCA_OUTPUT", "xml")

	cfg, err := Load(viper.New(), "")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "output")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectedErr bool
	}{
		{
			name:        "valid",
			cfg:         Config{DataDir: "res", Output: "text"},
			expectedErr: false,
		},
		{
			name:        "empty data dir",
			cfg:         Config{DataDir: " ", Output: "text"},
			expectedErr: true,
		},
		{
			name:        "negative rotation",
			cfg:         Config{DataDir: "res", Output: "yaml", Log: LogConfig{MaxSizeMB: -1}},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLayout_Paths(t *testing.T) {
	l := Layout{Root: "res", User: "alice"}

	assert.Equal(t, filepath.Join("res", "alice", "vocas"), l.VocaDir())
	assert.Equal(t, filepath.Join("res", "alice", "notes"), l.NoteDir())
	assert.Equal(t, filepath.Join("res", "alice", "favorites", "_favorites.txt"), l.LedgerPath())
	assert.Equal(t, filepath.Join("res", "public", "vocas", "publics.txt"), l.PublicPath())
	assert.Equal(t, filepath.Join("res", "alice", "vocas", "myvoca.txt"), l.VocaPath("myvoca"))
	assert.Equal(t, filepath.Join("res", "alice", "notes", "note-1.txt"), l.NotePath("note-1.txt"))

	roots := l.ScanRoots()
	require.Len(t, roots, 2)
	assert.Equal(t, domain.CategoryPersonal, roots[0].Category)
	assert.Equal(t, domain.CategoryNote, roots[1].Category)
}

func TestLayout_ValidateUser(t *testing.T) {
	assert.NoError(t, Layout{User: "alice_01"}.ValidateUser())
	assert.Error(t, Layout{User: ""}.ValidateUser())
	assert.Error(t, Layout{User: "../bob"}.ValidateUser())
	assert.Error(t, Layout{User: "public"}.ValidateUser())
}

func TestLayout_CategoryOf(t *testing.T) {
	l := Layout{Root: "res", User: "alice"}

	tests := []struct {
		name        string
		path        string
		expected    domain.Category
		expectedErr bool
	}{
		{name: "personal", path: l.VocaPath("myvoca"), expected: domain.CategoryPersonal},
		{name: "note", path: l.NotePath("note-20240101_00_00_00"), expected: domain.CategoryNote},
		{name: "ledger", path: l.LedgerPath(), expected: domain.CategoryFavorites},
		{name: "public", path: l.PublicPath(), expected: domain.CategoryPublic},
		{name: "other user", path: filepath.Join("res", "bob", "vocas", "x.txt"), expectedErr: true},
		{name: "nested", path: filepath.Join(l.VocaDir(), "a", "b.txt"), expectedErr: true},
		{name: "directory itself", path: l.VocaDir(), expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := l.CategoryOf(tt.path)
			if tt.expectedErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestLayout_Resolve(t *testing.T) {
	l := Layout{Root: "res", User: "alice"}

	path, category, err := l.Resolve("personal:myvoca.txt")
	require.NoError(t, err)
	assert.Equal(t, l.VocaPath("myvoca.txt"), path)
	assert.Equal(t, domain.CategoryPersonal, category)

	path, category, err = l.Resolve("note:note-1")
	require.NoError(t, err)
	assert.Equal(t, l.NotePath("note-1"), path)
	assert.Equal(t, domain.CategoryNote, category)

	path, category, err = l.Resolve("public")
	require.NoError(t, err)
	assert.Equal(t, l.PublicPath(), path)
	assert.Equal(t, domain.CategoryPublic, category)

	path, category, err = l.Resolve("favorites")
	require.NoError(t, err)
	assert.Equal(t, l.LedgerPath(), path)
	assert.Equal(t, domain.CategoryFavorites, category)

	path, category, err = l.Resolve(l.NotePath("x"))
	require.NoError(t, err)
	assert.Equal(t, l.NotePath("x"), path)
	assert.Equal(t, domain.CategoryNote, category)

	for _, bad := range []string{"personal:", "personal:../x.txt", "note:.hidden", "elsewhere.txt"} {
		_, _, err := l.Resolve(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}
