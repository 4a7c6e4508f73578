package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/parser"
	"github.com/pable/cs-replay-analyzer/internal/pipeline"
	"github.com/pable/cs-replay-analyzer/internal/report"
	"github.com/pable/cs-replay-analyzer/internal/storage"
)

var (
	parseSampleRate    int
	parseFullPositions bool
	parseNoFires       bool
	parseNoPositions   bool
	parseNoStore       bool
	parsePlayer        string
)

var parseCmd = &cobra.Command{
	Use:   "parse <demo.dem> [out.json]",
	Short: "Analyze a CS2 demo file, write the JSON record and store the summary",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().IntVar(&parseSampleRate, "sample-rate", 0, "ticks between position samples (default from config)")
	parseCmd.Flags().BoolVar(&parseFullPositions, "full-positions", false, "sample positions up to analysis.full_position_ticks")
	parseCmd.Flags().BoolVar(&parseNoFires, "no-weapon-fires", false, "skip weapon_fire extraction")
	parseCmd.Flags().BoolVar(&parseNoPositions, "no-positions", false, "skip position sampling")
	parseCmd.Flags().BoolVar(&parseNoStore, "no-store", false, "do not persist the analysis")
	parseCmd.Flags().StringVar(&parsePlayer, "player", "", "focus player SteamID64")
}

func runParse(cmd *cobra.Command, args []string) error {
	demoPath := args[0]
	outPath := strings.TrimSuffix(demoPath, filepath.Ext(demoPath)) + ".json"
	if len(args) == 2 {
		outPath = args[1]
	}

	opts := cfg.PipelineOptions(parseFullPositions)
	if parseSampleRate > 0 {
		opts.SampleRate = parseSampleRate
	}
	if parseNoFires {
		opts.WeaponFires = false
	}
	if parseNoPositions {
		opts.Positions = false
	}

	fmt.Fprintf(os.Stdout, "Parsing %s...\n", demoPath)
	start := time.Now()
	src, err := parser.Open(demoPath)
	if err != nil {
		return fmt.Errorf("parse demo: %w", err)
	}

	rec, err := pipeline.Run(src, opts, log.WithField("demo", report.ShortHash(src.Hash)))
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("analysis finished")

	if err := writeRecord(outPath, rec); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", outPath)
	if n := rec.ParsingStats.TotalFailedCategories; n > 0 {
		color.New(color.FgYellow).Fprintf(os.Stderr, "%d event categories failed and were left empty; rerun with --log-level debug for details.\n", n)
	}

	summary := rec.Summary(src.Hash, uuid.NewString(), time.Now())
	if !parseNoStore {
		if err := store(summary, rec); err != nil {
			return err
		}
	}

	printAnalysis(summary, rec.Players, rec.Rounds, rec.EntryDuels, rec.Trades, rec.Clutches, parsePlayer)
	fmt.Fprintln(os.Stdout)
	report.PrintParsingStats(os.Stdout, rec.ParsingStats)
	return nil
}

func writeRecord(path string, rec *model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		f.Close()
		return fmt.Errorf("encode record: %w", err)
	}
	return f.Close()
}

func store(summary model.MatchSummary, rec *model.Record) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	exists, err := db.DemoExists(summary.DemoHash)
	if err != nil {
		return fmt.Errorf("check demo: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Demo %s already stored, replacing previous analysis.\n", report.ShortHash(summary.DemoHash))
	}
	if err := db.SaveAnalysis(summary, rec); err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}
	log.WithField("analysis_id", summary.AnalysisID).Debug("analysis stored")
	return nil
}

// printAnalysis prints the match header followed by the round, player, entry,
// trade and clutch tables.
func printAnalysis(s model.MatchSummary, players []model.Player, rounds []model.RoundBoundary,
	duels []model.EntryDuel, trades []model.Trade, clutches []model.Clutch, focus string) {
	names := report.NamesOf(players)
	w := os.Stdout

	report.PrintMatchSummary(w, s)
	report.PrintRoundTable(w, rounds)
	fmt.Fprintln(w)
	report.PrintPlayerTable(w, report.Tally(players, duels, trades, clutches), focus)
	fmt.Fprintln(w, "\nEntry duels")
	report.PrintEntryTable(w, duels, names, focus)
	fmt.Fprintln(w, "\nTrades")
	report.PrintTradeTable(w, trades, names, focus)
	fmt.Fprintln(w, "\nClutches")
	report.PrintClutchTable(w, clutches, names, focus)
}
