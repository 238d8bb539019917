package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/mmgmt/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status <key>",
	Short: "Show the metadata of a remote object",
	Long: `Print the size, storage class, last-modified time, integrity tag and
restore state of the object with the given key.

Examples:
  mmgmt status movie.mkv.tar.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	obj, err := store.Head(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.RenderObjectDetails(obj))
	return nil
}
