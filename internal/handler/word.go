package handler

import (
	"errors"
	"fmt"

	"vocabook/internal/domain"

	"github.com/spf13/cobra"
)

func (h *Handler) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <target>",
		Short: "Show the words of a file",
		Long:  "Show the words of a file with their favorite status.\n\n" + targetHelp,
		Args:  cobra.ExactArgs(1),
		RunE:  h.withWorkspace(h.runList),
	}
}

func (h *Handler) runList(cmd *cobra.Command, args []string) error {
	path, category, err := h.resolve(args[0])
	if err != nil {
		return err
	}

	records, err := h.sync.LoadFile(path, category)
	if err != nil {
		return err
	}

	views := make([]recordView, 0, len(records))
	for i, rec := range records {
		views = append(views, newRecordView(i+1, rec))
	}
	return h.printRecords(cmd.OutOrStdout(), views)
}

func (h *Handler) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <target> <english> <meaning>",
		Short: "Add a word or a new meaning of a known word",
		Long: "Add a word to a file. When the word is already there the meaning is merged\n" +
			"into it; several meanings can be given separated by '/'.\n\n" + targetHelp,
		Args: cobra.ExactArgs(3),
		RunE: h.withWorkspace(h.runAdd),
	}
}

func (h *Handler) runAdd(cmd *cobra.Command, args []string) error {
	path, category, err := h.resolve(args[0])
	if err != nil {
		return err
	}

	res, err := h.sync.AddWord(path, category, cleanArg(args[1]), cleanArg(args[2]))
	return h.printResult(cmd.OutOrStdout(), res, err)
}

func (h *Handler) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <target> <position>",
		Short: "Remove the word at a position",
		Long:  "Remove the word at a 1-based position as shown by list.\n\n" + targetHelp,
		Args:  cobra.ExactArgs(2),
		RunE:  h.withWorkspace(h.runRemove),
	}
}

func (h *Handler) runRemove(cmd *cobra.Command, args []string) error {
	path, category, err := h.resolve(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}

	res, err := h.sync.RemoveWord(path, category, index)
	return h.printResult(cmd.OutOrStdout(), res, err)
}

func (h *Handler) newEditCmd() *cobra.Command {
	var english, meaning string

	cmd := &cobra.Command{
		Use:   "edit <target> <position>",
		Short: "Change the english word or the meanings at a position",
		Long: "Change the word at a 1-based position. Values that are not given stay as they are;\n" +
			"--meaning replaces all meanings.\n\n" + targetHelp,
		Args: cobra.ExactArgs(2),
		RunE: h.withWorkspace(func(cmd *cobra.Command, args []string) error {
			english, meaning = cleanArg(english), cleanArg(meaning)
			if english == "" && meaning == "" {
				return errors.New("nothing to change: set --english or --meaning")
			}
			return h.runEdit(cmd, args, english, meaning)
		}),
	}
	cmd.Flags().StringVar(&english, "english", "", "new english word")
	cmd.Flags().StringVar(&meaning, "meaning", "", "new meanings separated by '/'")
	return cmd
}

func (h *Handler) runEdit(cmd *cobra.Command, args []string, english, meaning string) error {
	path, category, err := h.resolve(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}

	res, err := h.sync.EditWord(path, category, index, english, meaning)
	return h.printResult(cmd.OutOrStdout(), res, err)
}

func (h *Handler) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <target> <query>",
		Short: "Find words whose english or meaning contains a text",
		Long:  "Find words whose english or meaning contains query, ignoring case.\n\n" + targetHelp,
		Args:  cobra.ExactArgs(2),
		RunE:  h.withWorkspace(h.runSearch),
	}
}

func (h *Handler) runSearch(cmd *cobra.Command, args []string) error {
	path, category, err := h.resolve(args[0])
	if err != nil {
		return err
	}
	query := cleanArg(args[1])
	if query == "" {
		return fmt.Errorf("%w: empty query", domain.ErrValidation)
	}

	matches, err := h.sync.Search(path, category, query)
	if err != nil {
		return err
	}

	views := make([]recordView, 0, len(matches))
	for _, m := range matches {
		views = append(views, newRecordView(m.Index+1, m.Record))
	}
	return h.printRecords(cmd.OutOrStdout(), views)
}
