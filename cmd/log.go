package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/mmgmt/internal/config"
	"github.com/vietdv277/mmgmt/internal/logging"
)

var logTail int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Display the log file contents",
	Long: `Print the contents of the application log file.

Examples:
  mmgmt log
  mmgmt log --tail 50`,
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntVarP(&logTail, "tail", "n", 0, "Show only the last N lines")
}

func runLog(cmd *cobra.Command, args []string) error {
	path := logging.FilePath(config.GetConfigDir())

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file not found: %s", path)
		}
		return err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if logTail > 0 && logTail < len(lines) {
		lines = lines[len(lines)-logTail:]
	}
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
