package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/mmgmt/internal/config"
	"github.com/vietdv277/mmgmt/internal/logging"
	"github.com/vietdv277/mmgmt/internal/storage"
	"github.com/vietdv277/mmgmt/pkg/provider"
)

var (
	// Global flags
	profile string
	region  string
	debug   bool

	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mmgmt",
	Short: "Media MGMT - manage media archives between local disk and S3",
	Long: `Media MGMT is a command-line tool that moves media files between a local
directory and an S3 bucket. Uploads are compressed into a single tar.gz
archive per target; after a confirmed transfer the original is moved into
a completed directory and the local archive is removed.

Transfer Commands:
  mmgmt upload movie.mkv       # Compress and upload one file or directory
  mmgmt upload --all           # Upload every entry of the current directory
  mmgmt download <key>         # Download an object into the current directory

Inspection Commands:
  mmgmt search <keyword>       # Search local and remote names, then act on matches
  mmgmt status <key>           # Show object size, storage class and integrity tag
  mmgmt list [local|remote|all]

Destructive Commands:
  mmgmt delete <key>           # Delete a remote object (asks for confirmation)

Run 'mmgmt config' once to set the bucket and local directory.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
}

func initConfig() {
	// Read from environment variables (MMGMT_BUCKET, MMGMT_LOCAL_DIR, ...)
	viper.SetEnvPrefix("MMGMT")
	viper.AutomaticEnv()

	// Priority: --profile flag > AWS_PROFILE env
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}

	// Use AWS_REGION if --region not specified
	if region == "" {
		region = os.Getenv("AWS_REGION")
		if region == "" {
			region = os.Getenv("AWS_DEFAULT_REGION")
		}
	}

	logger = logging.Setup(config.GetConfigDir(), debug)
}

// loadConfig loads the application configuration with environment
// overrides and defaults applied.
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// newStore builds the S3-backed object store for the configured bucket.
// Configuration is validated before any client is constructed.
func newStore(ctx context.Context, cfg *config.Config) (provider.ObjectStore, error) {
	if err := cfg.Validate(true); err != nil {
		return nil, err
	}
	return storage.NewClient(ctx, cfg.Bucket,
		storage.WithProfile(profile),
		storage.WithRegion(region),
		storage.WithEndpoint(viper.GetString("s3_endpoint")),
	)
}
