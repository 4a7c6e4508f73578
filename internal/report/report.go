// Package report renders analysis results as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/cs-replay-analyzer/internal/model"
)

var reasonLabels = map[int]string{
	model.ReasonBombExploded: "bomb exploded",
	model.ReasonBombDefused:  "bomb defused",
	model.ReasonCTKilled:     "CT eliminated",
	model.ReasonTKilled:      "T eliminated",
	model.ReasonTimeExpired:  "time expired",
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// ShortHash returns the first 12 characters of a demo hash.
func ShortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// ReasonLabel names a round end reason code.
func ReasonLabel(code int) string {
	if l, ok := reasonLabels[code]; ok {
		return l
	}
	return strconv.Itoa(code)
}

// Names maps entity ids to display names.
type Names map[string]string

// NamesOf builds a Names lookup from a player list.
func NamesOf(players []model.Player) Names {
	n := make(Names, len(players))
	for _, p := range players {
		n[p.SteamID] = p.Name
	}
	return n
}

// Of returns the display name of id, falling back to the id itself.
func (n Names) Of(id string) string {
	if name := n[id]; name != "" {
		return name
	}
	if id == "" {
		return "—"
	}
	return id
}

func marker(id, focus string) string {
	if focus != "" && id == focus {
		return ">"
	}
	return " "
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	date := s.MatchDate
	if date == "" {
		date = "unknown"
	}
	fmt.Fprintf(w, "\nMap: %s  |  Date: %s  |  Rounds: %d  |  Score: CT %d – T %d  |  Hash: %s\n\n",
		s.MapName, date, s.Rounds, s.CTScore, s.TScore, ShortHash(s.DemoHash))
}

// PrintRoundTable prints one row per round boundary.
func PrintRoundTable(w io.Writer, rounds []model.RoundBoundary) {
	table := newTable(w)
	table.Header("ROUND", "WINNER", "REASON", "END_TICK")
	for _, r := range rounds {
		table.Append(
			strconv.Itoa(r.RoundNumber),
			r.Winner.String(),
			ReasonLabel(r.Reason),
			strconv.Itoa(r.EndTick),
		)
	}
	table.Render()
}

// PrintEntryTable prints the opening kill of every round.
// If focus is non-empty, rows involving that player are marked with ">".
func PrintEntryTable(w io.Writer, duels []model.EntryDuel, names Names, focus string) {
	table := newTable(w)
	table.Header(" ", "ROUND", "TICK", "WINNER", "LOSER", "WEAPON", "HS", "DIST")
	for _, d := range duels {
		m := marker(d.WinnerID, focus)
		if m == " " {
			m = marker(d.LoserID, focus)
		}
		hs := ""
		if d.Headshot {
			hs = "✓"
		}
		table.Append(
			m,
			strconv.Itoa(d.Round),
			strconv.Itoa(d.Tick),
			names.Of(d.WinnerID),
			names.Of(d.LoserID),
			d.Weapon,
			hs,
			fmt.Sprintf("%.0f", d.Distance),
		)
	}
	table.Render()
}

// PrintTradeTable prints detected trades.
// Columns: ROUND | VICTIM | KILLER | TRADER | TIME
func PrintTradeTable(w io.Writer, trades []model.Trade, names Names, focus string) {
	table := newTable(w)
	table.Header(" ", "ROUND", "VICTIM", "KILLER", "TRADER", "TIME")
	for _, tr := range trades {
		table.Append(
			marker(tr.TraderID, focus),
			strconv.Itoa(tr.Round),
			names.Of(tr.OriginalVictimID),
			names.Of(tr.OriginalKillerID),
			names.Of(tr.TraderID),
			fmt.Sprintf("%.2fs", tr.TimeToTrade),
		)
	}
	table.Render()
}

// PrintClutchTable prints detected clutches.
func PrintClutchTable(w io.Writer, clutches []model.Clutch, names Names, focus string) {
	table := newTable(w)
	table.Header(" ", "ROUND", "PLAYER", "KILLS", "START_TICK")
	for _, c := range clutches {
		table.Append(
			marker(c.SteamID, focus),
			strconv.Itoa(c.Round),
			names.Of(c.SteamID),
			strconv.Itoa(c.KillsInClutch),
			strconv.Itoa(c.StartTick),
		)
	}
	table.Render()
}

// PlayerLine is a per-player roll-up of the derived tactical events.
type PlayerLine struct {
	SteamID      string
	Name         string
	Team         int
	EntryKills   int
	EntryDeaths  int
	Trades       int
	TradedDeaths int
	Clutches     int
	ClutchKills  int
}

// Tally rolls derived events up per player. Players appear in the given order,
// followed by any id that only occurs in the events, in order of appearance.
func Tally(players []model.Player, duels []model.EntryDuel, trades []model.Trade, clutches []model.Clutch) []PlayerLine {
	var lines []PlayerLine
	idx := make(map[string]int)
	line := func(id string) *PlayerLine {
		if i, ok := idx[id]; ok {
			return &lines[i]
		}
		idx[id] = len(lines)
		lines = append(lines, PlayerLine{SteamID: id})
		return &lines[len(lines)-1]
	}
	for _, p := range players {
		l := line(p.SteamID)
		l.Name, l.Team = p.Name, p.Team
	}
	for _, d := range duels {
		line(d.WinnerID).EntryKills++
		line(d.LoserID).EntryDeaths++
	}
	for _, tr := range trades {
		line(tr.TraderID).Trades++
		line(tr.OriginalVictimID).TradedDeaths++
	}
	for _, c := range clutches {
		l := line(c.SteamID)
		l.Clutches++
		l.ClutchKills += c.KillsInClutch
	}
	return lines
}

// PrintPlayerTable prints the per-player roll-up produced by Tally.
// If focus is non-empty, that player's row is marked with ">".
func PrintPlayerTable(w io.Writer, lines []PlayerLine, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "TEAM", "ENTRY_K", "ENTRY_D", "TRADE_K", "TRADED_D", "CLUTCH", "CLUTCH_K")
	for _, l := range lines {
		name := l.Name
		if name == "" {
			name = l.SteamID
		}
		table.Append(
			marker(l.SteamID, focus),
			name,
			model.Team(l.Team).String(),
			strconv.Itoa(l.EntryKills),
			strconv.Itoa(l.EntryDeaths),
			strconv.Itoa(l.Trades),
			strconv.Itoa(l.TradedDeaths),
			strconv.Itoa(l.Clutches),
			strconv.Itoa(l.ClutchKills),
		)
	}
	table.Render()
}

// PrintParsingStats prints per-category entry counts.
func PrintParsingStats(w io.Writer, s model.ParsingStats) {
	table := newTable(w)
	table.Header("CATEGORY", "ENTRIES")
	rows := []struct {
		label string
		n     int
	}{
		{"rounds", s.TotalRounds},
		{"kills", s.TotalKills},
		{"damages", s.TotalDamages},
		{"grenades", s.TotalGrenades},
		{"blinds", s.TotalBlinds},
		{"bomb events", s.TotalBombEvents},
		{"weapon fires", s.TotalWeaponFires},
		{"position snapshots", s.TotalPositionSnapshots},
		{"purchases", s.TotalPurchases},
		{"failed categories", s.TotalFailedCategories},
	}
	for _, r := range rows {
		table.Append(r.label, strconv.Itoa(r.n))
	}
	table.Render()
}

// PrintDemoList prints the stored analyses.
func PrintDemoList(w io.Writer, demos []model.MatchSummary) {
	table := newTable(w)
	table.Header("HASH", "MAP", "DATE", "ROUNDS", "SCORE", "KILLS", "FAILED", "TICK", "PARSED")
	for _, d := range demos {
		date := d.MatchDate
		if len(date) > 10 {
			date = date[:10]
		}
		table.Append(
			ShortHash(d.DemoHash),
			d.MapName,
			date,
			strconv.Itoa(d.Rounds),
			fmt.Sprintf("%d-%d", d.CTScore, d.TScore),
			strconv.Itoa(d.Kills),
			strconv.Itoa(d.Failed),
			fmt.Sprintf("%.0f", d.Tickrate),
			d.ParsedAt,
		)
	}
	table.Render()
}

// PrintRaw prints an arbitrary result set.
func PrintRaw(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}
