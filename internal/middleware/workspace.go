package middleware

import (
	"fmt"
	"os"

	"vocabook/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// HandlerFunc is the body of a cobra command
type HandlerFunc func(cmd *cobra.Command, args []string) error

// MiddlewareFunc wraps a HandlerFunc
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

// Workspace creates middleware that prepares the user's directories before
// running a data command. The layout is resolved lazily because configuration
// is only loaded once the command line has been parsed.
func Workspace(layout func() config.Layout, logger func() *zap.Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(cmd *cobra.Command, args []string) error {
			if err := EnsureWorkspace(layout(), logger()); err != nil {
				return err
			}
			return next(cmd, args)
		}
	}
}

// EnsureWorkspace validates the user name and makes sure the personal, note
// and favorites directories exist and are writable
func EnsureWorkspace(layout config.Layout, logger *zap.Logger) error {
	if err := layout.ValidateUser(); err != nil {
		return err
	}

	for _, dir := range []string{layout.VocaDir(), layout.NoteDir(), layout.FavoriteDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Failed to prepare workspace", zap.String("dir", dir), zap.Error(err))
			return fmt.Errorf("workspace %s is not usable: %w", dir, err)
		}
	}

	probe, err := os.CreateTemp(layout.UserDir(), ".voca-probe-*")
	if err != nil {
		logger.Error("Workspace is not writable", zap.String("dir", layout.UserDir()), zap.Error(err))
		return fmt.Errorf("workspace %s is not writable: %w", layout.UserDir(), err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	logger.Debug("Workspace ready", zap.String("dir", layout.UserDir()))
	return nil
}
