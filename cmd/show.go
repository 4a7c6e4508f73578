package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/cs-replay-analyzer/internal/storage"
)

var showPlayer string

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored analysis by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPlayer, "player", "", "highlight player SteamID64")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return showDemo(db, args[0], showPlayer)
}

func showDemo(db *storage.DB, prefix, focus string) error {
	demo, err := db.GetDemoByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query demo: %w", err)
	}
	if demo == nil {
		fmt.Fprintf(os.Stderr, "No demo found with hash prefix %q\n", prefix)
		return nil
	}

	players, err := db.GetPlayers(demo.DemoHash)
	if err != nil {
		return fmt.Errorf("get players: %w", err)
	}
	rounds, err := db.GetRounds(demo.DemoHash)
	if err != nil {
		return fmt.Errorf("get rounds: %w", err)
	}
	duels, err := db.GetEntryDuels(demo.DemoHash)
	if err != nil {
		return fmt.Errorf("get entry duels: %w", err)
	}
	trades, err := db.GetTrades(demo.DemoHash)
	if err != nil {
		return fmt.Errorf("get trades: %w", err)
	}
	clutches, err := db.GetClutches(demo.DemoHash)
	if err != nil {
		return fmt.Errorf("get clutches: %w", err)
	}

	printAnalysis(*demo, players, rounds, duels, trades, clutches, focus)
	return nil
}
