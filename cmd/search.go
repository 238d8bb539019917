package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/mmgmt/internal/search"
	"github.com/vietdv277/mmgmt/internal/ui"
)

var searchNoInput bool

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search local and remote names for a keyword",
	Long: `Search for the keyword in local file names under the configured
directory and in remote object keys. Matching is a case-insensitive
substring match. Remote matches are shown as an indexed table and drive
an action menu (download, delete, inspect) until you exit.

Examples:
  mmgmt search "the wire"
  mmgmt search 2019 --no-input        # Print matches and skip the menu`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchNoInput, "no-input", false, "Print matches without the interactive action menu")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	keyword := args[0]
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	engine := search.NewEngine(store, cfg, logger)
	res, err := engine.Search(ctx, keyword)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nsearching for %q: %d local, %d remote matches\n\n",
		keyword, len(res.Local), len(res.Remote))

	if len(res.Local) > 0 {
		fmt.Fprintln(out, ui.HeaderStyle.Render("Local Matches"))
		for _, p := range res.Local {
			fmt.Fprintln(out, "  "+p)
		}
		fmt.Fprintln(out)
	}

	if len(res.Remote) > 0 {
		fmt.Fprintln(out, ui.HeaderStyle.Render("Remote Matches"))
		fmt.Fprint(out, ui.RenderObjectTable(res.Remote))
	}

	if searchNoInput {
		return nil
	}
	return engine.ActionLoop(ctx, res, cmd.InOrStdin(), out, search.LoopOptions{DestDir: "."})
}
