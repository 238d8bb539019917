package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietdv277/mmgmt/internal/transfer"
	"github.com/vietdv277/mmgmt/internal/ui"
	"github.com/vietdv277/mmgmt/pkg/types"
)

var uploadAllFlag bool

var uploadCmd = &cobra.Command{
	Use:   "upload [target]",
	Short: "Compress and upload a file or directory to the bucket",
	Long: `Compress the target into a tar.gz archive and upload it to the
configured bucket. After a confirmed transfer the original is moved into
the completed directory and the archive is removed. On a failed transfer
the archive is kept so a retry does not recompress.

Examples:
  mmgmt upload movie.mkv               # Upload one file
  mmgmt upload "Some Show S01"         # Upload a whole directory
  mmgmt upload --all                   # Upload every entry of the current directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolVarP(&uploadAllFlag, "all", "a", false, "Upload every entry of the current directory")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	uploader := transfer.NewUploader(store, cfg, logger)
	out := cmd.OutOrStdout()

	if uploadAllFlag {
		if len(args) > 0 {
			return errors.New("cannot specify both a target and --all")
		}
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		outcomes, err := uploader.UploadAll(ctx, cwd)
		if err != nil {
			return err
		}
		failed := 0
		for _, outcome := range outcomes {
			printOutcome(out, outcome)
			if !outcome.Success {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d targets failed", failed, len(outcomes))
		}
		return nil
	}

	if len(args) == 0 {
		return errors.New("specify a target or use --all")
	}

	outcome := uploader.Upload(ctx, args[0])
	printOutcome(out, outcome)
	if !outcome.Success {
		return outcome.Err
	}
	return nil
}

func printOutcome(w io.Writer, outcome types.OperationOutcome) {
	if outcome.Success {
		fmt.Fprintf(w, "%s %s -> %s\n", ui.OKStyle.Render("uploaded"), outcome.Target, outcome.Key)
		if outcome.CompletedPath != "" {
			fmt.Fprintf(w, "  moved to %s\n", outcome.CompletedPath)
		}
		return
	}
	fmt.Fprintf(w, "%s %s at %s stage: %v\n", ui.WarnStyle.Render("failed"), outcome.Target, outcome.FailedStage, outcome.Err)
	if outcome.ArchiveRetained {
		fmt.Fprintln(w, "  archive kept for retry")
	}
}
