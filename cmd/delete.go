package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/mmgmt/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a remote object (asks for confirmation)",
	Long: `Delete the object with the given key from the bucket. The object's
size and storage class are shown and an explicit confirmation is required
before anything is removed.

Examples:
  mmgmt delete movie.mkv.tar.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	key := args[0]
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	obj, err := store.Head(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprint(out, ui.RenderObjectDetails(obj))

	fmt.Fprintf(out, "\nConfirm deletion of %s (%.2f GB, %s)? [y/N] ", obj.Key, obj.SizeGB(), obj.StorageClass)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "aborted")
		return nil
	}

	if err := store.Delete(ctx, key); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s successfully deleted\n", key)
	return nil
}
