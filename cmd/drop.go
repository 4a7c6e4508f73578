package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/cs-replay-analyzer/internal/report"
	"github.com/pable/cs-replay-analyzer/internal/storage"
)

var (
	dropForce bool
	dropAll   bool
)

// dropCmd deletes one stored analysis, or the whole database with --all.
var dropCmd = &cobra.Command{
	Use:   "drop [hash-prefix]",
	Short: "Delete a stored analysis or the whole database",
	Long: "Delete the stored analysis whose hash starts with the given prefix. With --all, permanently " +
		"delete the SQLite database file; re-parse your demos afterwards to rebuild.",
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().BoolVar(&dropAll, "all", false, "delete the whole database file")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropAll {
		return dropDatabase()
	}
	if len(args) == 0 {
		return fmt.Errorf("a hash prefix is required unless --all is given")
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	demo, err := db.GetDemoByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("query demo: %w", err)
	}
	if demo == nil {
		fmt.Fprintf(os.Stderr, "No demo found with hash prefix %q\n", args[0])
		return nil
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete the analysis of %s (%s).\n", report.ShortHash(demo.DemoHash), demo.MapName)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if _, err := db.DeleteDemo(demo.DemoHash); err != nil {
		return fmt.Errorf("delete demo: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", report.ShortHash(demo.DemoHash))
	return nil
}

func dropDatabase() error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
