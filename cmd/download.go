package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/mmgmt/internal/transfer"
)

var downloadRestore bool

var downloadCmd = &cobra.Command{
	Use:   "download <key>",
	Short: "Download an object into the current directory",
	Long: `Download the object with the given key into the current directory,
named after the key's base name.

Objects in GLACIER or DEEP_ARCHIVE must be restored before they can be
downloaded. Use --restore to request the restore; GLACIER restores use the
expedited tier (minutes), DEEP_ARCHIVE the standard tier (up to 12 hours).

Examples:
  mmgmt download movie.mkv.tar.gz
  mmgmt download movie.mkv.tar.gz --restore`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().BoolVar(&downloadRestore, "restore", false, "Request a restore for an archived object instead of downloading")
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	key := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	downloader := transfer.NewDownloader(store, ".", logger)

	if downloadRestore {
		if err := downloader.RequestRestore(ctx, key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restore requested for %s; retry the download once it completes\n", key)
		return nil
	}

	dest, err := downloader.Download(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "downloaded to %s\n", dest)
	return nil
}
