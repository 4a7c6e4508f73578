package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/storage"
)

var exportOut string

// storedAnalysis is the schema written by export: the stored summary plus the
// derived events, without the per-event tables of the full record.
type storedAnalysis struct {
	Hash       string                `json:"hash"`
	AnalysisID string                `json:"analysisId"`
	Map        string                `json:"map"`
	MatchDate  string                `json:"matchDate,omitempty"`
	ParsedAt   string                `json:"parsedAt"`
	TickRate   float64               `json:"tickrate"`
	Score      map[string]int        `json:"score"`
	Failed     int                   `json:"failedCategories"`
	Players    []model.Player        `json:"players"`
	Rounds     []model.RoundBoundary `json:"rounds"`
	EntryDuels []model.EntryDuel     `json:"entryDuels"`
	Trades     []model.Trade         `json:"trades"`
	Clutches   []model.Clutch        `json:"clutches"`
}

var exportCmd = &cobra.Command{
	Use:   "export <hash-prefix>",
	Short: "Export a stored analysis as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	a, err := loadStored(db, args[0])
	if err != nil {
		return err
	}
	if a == nil {
		fmt.Fprintf(os.Stderr, "No demo found with hash prefix %q\n", args[0])
		return nil
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOut)
	}
	return nil
}

func loadStored(db *storage.DB, prefix string) (*storedAnalysis, error) {
	d, err := db.GetDemoByPrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("query demo: %w", err)
	}
	if d == nil {
		return nil, nil
	}
	a := &storedAnalysis{
		Hash:       d.DemoHash,
		AnalysisID: d.AnalysisID,
		Map:        d.MapName,
		MatchDate:  d.MatchDate,
		ParsedAt:   d.ParsedAt,
		TickRate:   d.Tickrate,
		Score:      map[string]int{"CT": d.CTScore, "T": d.TScore},
		Failed:     d.Failed,
	}
	if a.Players, err = db.GetPlayers(d.DemoHash); err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}
	if a.Rounds, err = db.GetRounds(d.DemoHash); err != nil {
		return nil, fmt.Errorf("get rounds: %w", err)
	}
	if a.EntryDuels, err = db.GetEntryDuels(d.DemoHash); err != nil {
		return nil, fmt.Errorf("get entry duels: %w", err)
	}
	if a.Trades, err = db.GetTrades(d.DemoHash); err != nil {
		return nil, fmt.Errorf("get trades: %w", err)
	}
	if a.Clutches, err = db.GetClutches(d.DemoHash); err != nil {
		return nil, fmt.Errorf("get clutches: %w", err)
	}
	return a, nil
}
