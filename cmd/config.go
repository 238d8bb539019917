package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/mmgmt/internal/config"
	"github.com/vietdv277/mmgmt/internal/storage"
	"github.com/vietdv277/mmgmt/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the application interactively",
	Long: `Set the bucket, key prefix, local media directory and completed
directory. Current values are offered as defaults; press Enter to keep
them. Values can also be overridden per invocation with MMGMT_* environment
variables (MMGMT_BUCKET, MMGMT_PREFIX, MMGMT_LOCAL_DIR, MMGMT_COMPLETED_DIR).`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	// Raw file values only: env overrides must not be persisted.
	cfg, err := config.LoadFrom(config.GetConfigPath())
	if err != nil {
		return err
	}

	// Bucket listing is advisory; missing credentials just skip it.
	if buckets, err := listBuckets(ctx); err == nil && len(buckets) > 0 {
		fmt.Fprintln(out, ui.HeaderStyle.Render("Available Buckets"))
		for _, b := range buckets {
			fmt.Fprintln(out, "  "+b)
		}
		fmt.Fprintln(out)
	} else if err != nil {
		logger.Debug("could not list buckets", "err", err)
	}

	cfg.Bucket = promptDefault(reader, out, "bucket", cfg.Bucket)
	cfg.Prefix = promptDefault(reader, out, "key prefix (optional)", cfg.Prefix)
	cfg.LocalRoot = promptDefault(reader, out, "local media directory", cfg.LocalRoot)
	cfg.CompletedDir = promptDefault(reader, out, "completed directory (blank for <local>/completed)", cfg.CompletedDir)

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nconfiguration written to %s\n", config.GetConfigPath())
	printConfig(out, cfg)
	return nil
}

func listBuckets(ctx context.Context) ([]string, error) {
	client, err := storage.NewClient(ctx, "",
		storage.WithProfile(profile),
		storage.WithRegion(region),
	)
	if err != nil {
		return nil, err
	}
	return client.ListBuckets(ctx)
}

func promptDefault(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.HeaderStyle.Render("Current Configuration"))
	fmt.Fprintln(out, ui.MutedStyle.Render("───────────────────────────────"))
	fmt.Fprintf(out, "  Bucket:        %s\n", cfg.Bucket)
	fmt.Fprintf(out, "  Prefix:        %s\n", cfg.Prefix)
	fmt.Fprintf(out, "  LocalRoot:     %s\n", cfg.LocalRoot)
	fmt.Fprintf(out, "  CompletedDir:  %s\n", cfg.CompletedDir)
	fmt.Fprintf(out, "  SkipNames:     %s\n", strings.Join(cfg.SkipNames, ", "))
}
