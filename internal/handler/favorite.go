package handler

import (
	"github.com/spf13/cobra"
)

func (h *Handler) newFavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <target> <position>",
		Short: "Toggle the favorite status of the word at a position",
		Long: "Toggle the favorite status of the word at a 1-based position. Removing a favorite\n" +
			"also clears its marker from every personal list and mistake note.\n\n" + targetHelp,
		Args: cobra.ExactArgs(2),
		RunE: h.withWorkspace(h.runFav),
	}
}

func (h *Handler) runFav(cmd *cobra.Command, args []string) error {
	path, category, err := h.resolve(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}

	res, err := h.sync.ToggleFavorite(path, category, index)
	return h.printResult(cmd.OutOrStdout(), res, err)
}

func (h *Handler) newUnfavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfav <english>",
		Short: "Remove a word from the favorites everywhere",
		Args:  cobra.ExactArgs(1),
		RunE:  h.withWorkspace(h.runUnfav),
	}
}

func (h *Handler) runUnfav(cmd *cobra.Command, args []string) error {
	res, err := h.sync.RemoveFromLedger(cleanArg(args[0]))
	return h.printResult(cmd.OutOrStdout(), res, err)
}

func (h *Handler) newFavoritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "Show all favorites of the user",
		Args:  cobra.NoArgs,
		RunE:  h.withWorkspace(h.runFavorites),
	}
}

func (h *Handler) runFavorites(cmd *cobra.Command, args []string) error {
	entries, err := h.ledger.List()
	if err != nil {
		return err
	}

	views := make([]recordView, 0, len(entries))
	for i, e := range entries {
		views = append(views, newRecordView(i+1, e))
	}
	return h.printRecords(cmd.OutOrStdout(), views)
}

func (h *Handler) newWhereCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "where <english>",
		Short: "Show where a word is marked as favorite",
		Args:  cobra.ExactArgs(1),
		RunE:  h.withWorkspace(h.runWhere),
	}
}

func (h *Handler) runWhere(cmd *cobra.Command, args []string) error {
	english := cleanArg(args[0])
	locations, err := h.sync.Locate(english)
	if printErr := h.printLocations(cmd.OutOrStdout(), english, locations); printErr != nil {
		return printErr
	}
	return err
}
