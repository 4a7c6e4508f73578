package storage

import (
	"testing"

	"github.com/pable/cs-replay-analyzer/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRecord() *model.Record {
	return &model.Record{
		Players: []model.Player{
			{SteamID: "2", Name: "Bob", Team: 2},
			{SteamID: "1", Name: "Alice", Team: 3},
		},
		Rounds: []model.RoundBoundary{
			{RoundNumber: 1, Winner: model.TeamCT, Reason: model.ReasonTKilled, EndTick: 1000},
			{RoundNumber: 2, Winner: model.TeamT, Reason: model.ReasonBombExploded, EndTick: 2000},
		},
		EntryDuels: []model.EntryDuel{
			{Round: 1, Tick: 400, WinnerID: "1", LoserID: "2", Weapon: "weapon_ak47", Headshot: true, Distance: 812.5},
			{Round: 2, Tick: 1300, WinnerID: "2", LoserID: "1", Weapon: "weapon_awp"},
		},
		Trades: []model.Trade{
			{Round: 1, OriginalKillTick: 400, TradeTick: 550, TimeToTrade: 150.0 / 128, OriginalVictimID: "2", OriginalKillerID: "1", TraderID: "3"},
			{Round: 1, OriginalKillTick: 600, TradeTick: 650, TimeToTrade: 50.0 / 128, OriginalVictimID: "4", OriginalKillerID: "5", TraderID: "1"},
		},
		Clutches: []model.Clutch{
			{Round: 2, SteamID: "2", KillsInClutch: 3, StartTick: 1300, Won: true},
		},
	}
}

func sampleSummary(hash, date string) model.MatchSummary {
	return model.MatchSummary{
		DemoHash:   hash,
		AnalysisID: "run-" + hash,
		MapName:    "de_mirage",
		MatchDate:  date,
		ParsedAt:   "2026-01-02T03:04:05Z",
		Tickrate:   64,
		Rounds:     2,
		CTScore:    1,
		TScore:     1,
		Kills:      5,
	}
}

func TestSaveAnalysisAndExists(t *testing.T) {
	db := openMemDB(t)

	if err := db.SaveAnalysis(sampleSummary("abc123", "2025-01-01T00:00:00Z"), sampleRecord()); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	exists, err := db.DemoExists("abc123")
	if err != nil {
		t.Fatalf("DemoExists: %v", err)
	}
	if !exists {
		t.Error("expected demo to exist after save")
	}

	notExists, err := db.DemoExists("nonexistent")
	if err != nil {
		t.Fatalf("DemoExists: %v", err)
	}
	if notExists {
		t.Error("expected demo not to exist")
	}
}

func TestDerivedEventsRoundTrip(t *testing.T) {
	db := openMemDB(t)
	rec := sampleRecord()
	if err := db.SaveAnalysis(sampleSummary("h1", ""), rec); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	players, err := db.GetPlayers("h1")
	if err != nil {
		t.Fatalf("GetPlayers: %v", err)
	}
	if len(players) != 2 || players[0] != rec.Players[0] || players[1] != rec.Players[1] {
		t.Errorf("players = %+v, want first-seen order", players)
	}

	rounds, err := db.GetRounds("h1")
	if err != nil {
		t.Fatalf("GetRounds: %v", err)
	}
	if len(rounds) != 2 || rounds[1] != rec.Rounds[1] {
		t.Errorf("rounds = %+v", rounds)
	}

	duels, err := db.GetEntryDuels("h1")
	if err != nil {
		t.Fatalf("GetEntryDuels: %v", err)
	}
	if len(duels) != 2 || duels[0] != rec.EntryDuels[0] {
		t.Errorf("entry duels = %+v", duels)
	}
	if duels[1].Headshot {
		t.Error("round 2 entry should not be a headshot")
	}

	trades, err := db.GetTrades("h1")
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(trades) != 2 || trades[0] != rec.Trades[0] || trades[1] != rec.Trades[1] {
		t.Errorf("trades = %+v", trades)
	}

	clutches, err := db.GetClutches("h1")
	if err != nil {
		t.Fatalf("GetClutches: %v", err)
	}
	if len(clutches) != 1 || clutches[0] != rec.Clutches[0] {
		t.Errorf("clutches = %+v", clutches)
	}
}

func TestSaveAnalysisReplacesPreviousRun(t *testing.T) {
	db := openMemDB(t)
	if err := db.SaveAnalysis(sampleSummary("h1", ""), sampleRecord()); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := sampleSummary("h1", "")
	second.AnalysisID = "run-2"
	rec := sampleRecord()
	rec.Trades = rec.Trades[:1]
	rec.Clutches = nil
	if err := db.SaveAnalysis(second, rec); err != nil {
		t.Fatalf("second save: %v", err)
	}

	d, err := db.GetDemoByPrefix("h1")
	if err != nil || d == nil {
		t.Fatalf("GetDemoByPrefix: %v %v", d, err)
	}
	if d.AnalysisID != "run-2" {
		t.Errorf("AnalysisID = %s, want run-2", d.AnalysisID)
	}
	trades, _ := db.GetTrades("h1")
	if len(trades) != 1 {
		t.Errorf("expected 1 trade after replace, got %d", len(trades))
	}
	clutches, _ := db.GetClutches("h1")
	if len(clutches) != 0 {
		t.Errorf("expected no clutches after replace, got %d", len(clutches))
	}
}

func TestSaveSummaryWithoutRecord(t *testing.T) {
	db := openMemDB(t)
	if err := db.SaveAnalysis(sampleSummary("bare", ""), nil); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}
	rounds, err := db.GetRounds("bare")
	if err != nil {
		t.Fatalf("GetRounds: %v", err)
	}
	if rounds == nil || len(rounds) != 0 {
		t.Errorf("expected empty non-nil rounds, got %#v", rounds)
	}
}

func TestListDemos(t *testing.T) {
	db := openMemDB(t)

	db.SaveAnalysis(sampleSummary("aaa", "2025-01-01T00:00:00Z"), nil)
	db.SaveAnalysis(sampleSummary("bbb", "2025-06-01T00:00:00Z"), nil)

	demos, err := db.ListDemos()
	if err != nil {
		t.Fatalf("ListDemos: %v", err)
	}
	if len(demos) != 2 {
		t.Errorf("expected 2 demos, got %d", len(demos))
	}
	// Should be ordered by match_date DESC.
	if demos[0].DemoHash != "bbb" {
		t.Errorf("expected first demo to be bbb (newest), got %s", demos[0].DemoHash)
	}
	if demos[0].MapName != "de_mirage" || demos[0].Tickrate != 64 || demos[0].Kills != 5 {
		t.Errorf("summary fields not round-tripped: %+v", demos[0])
	}
}

func TestGetDemoByPrefix(t *testing.T) {
	db := openMemDB(t)

	db.SaveAnalysis(sampleSummary("deadbeef1234", "2025-03-15T00:00:00Z"), nil)

	s, err := db.GetDemoByPrefix("deadb")
	if err != nil {
		t.Fatalf("GetDemoByPrefix: %v", err)
	}
	if s == nil {
		t.Fatal("expected match for prefix 'deadb'")
	}
	if s.DemoHash != "deadbeef1234" {
		t.Errorf("unexpected hash %s", s.DemoHash)
	}

	s2, err := db.GetDemoByPrefix("ffffffff")
	if err != nil {
		t.Fatalf("GetDemoByPrefix no-match: %v", err)
	}
	if s2 != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestDeleteDemo(t *testing.T) {
	db := openMemDB(t)
	db.SaveAnalysis(sampleSummary("gone", ""), sampleRecord())

	deleted, err := db.DeleteDemo("gone")
	if err != nil {
		t.Fatalf("DeleteDemo: %v", err)
	}
	if !deleted {
		t.Error("expected a row to be deleted")
	}
	if exists, _ := db.DemoExists("gone"); exists {
		t.Error("demo still exists")
	}
	if duels, _ := db.GetEntryDuels("gone"); len(duels) != 0 {
		t.Errorf("derived rows survived delete: %+v", duels)
	}

	deleted, err = db.DeleteDemo("gone")
	if err != nil {
		t.Fatalf("second DeleteDemo: %v", err)
	}
	if deleted {
		t.Error("second delete should report nothing deleted")
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	db.SaveAnalysis(sampleSummary("q1", ""), sampleRecord())

	cols, rows, err := db.QueryRaw("SELECT round, trader_id FROM trades WHERE demo_hash = 'q1' ORDER BY seq")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "round" || cols[1] != "trader_id" {
		t.Errorf("cols = %v", cols)
	}
	if len(rows) != 2 || rows[0][0] != "1" || rows[0][1] != "3" {
		t.Errorf("rows = %v", rows)
	}

	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}
