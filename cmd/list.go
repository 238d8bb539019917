package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/mmgmt/internal/search"
	"github.com/vietdv277/mmgmt/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list [local|remote|all]",
	Aliases: []string{"ls"},
	Short:   "List files in the local directory, the bucket, or both",
	Long: `List file names under the configured local directory and/or object
keys in the bucket. Defaults to both.

Examples:
  mmgmt list
  mmgmt ls remote`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	location := "all"
	if len(args) > 0 {
		location = args[0]
	}
	switch location {
	case "local", "remote", "all":
	default:
		return fmt.Errorf("invalid location %q (want local, remote or all)", location)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if location == "local" || location == "all" {
		if err := cfg.Validate(false); err != nil {
			return err
		}
		files, err := search.LocalFiles(cfg.LocalRoot, "")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.HeaderStyle.Render("Local Files"))
		for _, f := range files {
			fmt.Fprintln(out, "  "+f)
		}
		fmt.Fprintf(out, "  %d files\n\n", len(files))
	}

	if location == "remote" || location == "all" {
		store, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		objects, err := store.List(ctx, cfg.Prefix)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.HeaderStyle.Render("Bucket Objects"))
		for _, obj := range objects {
			fmt.Fprintln(out, "  "+obj.Key)
		}
		fmt.Fprintf(out, "  %d objects\n", len(objects))
	}

	return nil
}
