package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"vocabook/internal/domain"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (h *Handler) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "voca %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func (h *Handler) newFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List the vocabulary files of the user",
		Args:  cobra.NoArgs,
		RunE:  h.withWorkspace(h.runFiles),
	}
}

func (h *Handler) runFiles(cmd *cobra.Command, args []string) error {
	var files []fileView

	for _, root := range h.layout.ScanRoots() {
		paths, err := h.files.ListFiles(root.Dir, "*.txt")
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		for _, path := range paths {
			view, err := h.describeFile(path, root.Category)
			if err != nil {
				return err
			}
			files = append(files, view)
		}
	}

	for _, f := range []struct {
		path     string
		category domain.Category
	}{
		{h.layout.PublicPath(), domain.CategoryPublic},
		{h.layout.LedgerPath(), domain.CategoryFavorites},
	} {
		view, err := h.describeFile(f.path, f.category)
		if err != nil {
			return err
		}
		files = append(files, view)
	}

	return h.printFiles(cmd.OutOrStdout(), files)
}

func (h *Handler) describeFile(path string, category domain.Category) (fileView, error) {
	records, err := h.vocab.LoadFile(path, category)
	if err != nil {
		return fileView{}, err
	}

	name := filepath.Base(path)
	view := fileView{
		Category: category,
		Name:     strings.TrimSuffix(name, filepath.Ext(name)),
		Path:     path,
		Words:    len(records),
	}
	if category == domain.CategoryNote {
		if at, ok := domain.NoteTime(name); ok {
			view.Label = domain.NoteLabel(at, h.now())
		}
	}
	return view, nil
}

func (h *Handler) newDoctorCmd() *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that favorite markers agree with the favorites",
		Long: "Check every personal list and mistake note for favorite markers that are\n" +
			"missing from the favorites, or carry meanings the favorites lack.\n" +
			"With --repair stale markers are cleared and missing meanings are added.",
		Args: cobra.NoArgs,
		RunE: h.withWorkspace(func(cmd *cobra.Command, args []string) error {
			return h.runDoctor(cmd, repair)
		}),
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "fix the issues found")
	return cmd
}

func (h *Handler) runDoctor(cmd *cobra.Command, repair bool) error {
	run := h.consistency.Check
	if repair {
		run = h.consistency.Repair
	}

	report, err := run()
	if printErr := h.printReport(cmd.OutOrStdout(), report, repair); printErr != nil {
		return printErr
	}
	if err != nil {
		h.logger.Warn("Consistency pass incomplete", zap.Error(err))
		return err
	}
	return nil
}
