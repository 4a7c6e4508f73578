package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/cs-replay-analyzer/internal/report"
	"github.com/pable/cs-replay-analyzer/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the analysis database",
	Long: `Run an arbitrary SQL query against the analysis database and print results as a table.

Schema overview:
  demos(hash, analysis_id, map_name, match_date, parsed_at, tickrate, rounds,
    ct_score, t_score, kills, failed)
  players(demo_hash, steam_id TEXT, name, team, seq)
  round_boundaries(demo_hash, round_number, winner, reason, end_tick)
  entry_duels(demo_hash, round, tick, winner_id, loser_id, weapon, headshot, distance)
  trades(demo_hash, seq, round, original_kill_tick, trade_tick, time_to_trade,
    original_victim_id, original_killer_id, trader_id)
  clutches(demo_hash, round, steam_id, kills_in_clutch, start_tick, won)

Note: ids are stored as TEXT. Use quotes: WHERE trader_id = '76561198031906602'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	return querySQL(os.Stdout, db, strings.Join(args, " "))
}

func querySQL(w io.Writer, db *storage.DB, query string) error {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return nil
	}
	report.PrintRaw(w, cols, rows)
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
	return nil
}
