package tactics

import (
	"testing"

	"github.com/pable/cs-replay-analyzer/internal/model"
)

func kill(round, tick int, attacker, victim string) model.Kill {
	return model.Kill{Round: round, Tick: tick, AttackerID: attacker, VictimID: victim, Weapon: "ak47"}
}

func bounds(n int) []model.RoundBoundary {
	out := make([]model.RoundBoundary, n)
	for i := range out {
		out[i] = model.RoundBoundary{RoundNumber: i + 1, EndTick: (i + 1) * 10000}
	}
	return out
}

func TestEntryDuelPerRound(t *testing.T) {
	kills := []model.Kill{
		kill(2, 900, "C", "D"),
		kill(1, 300, "A", "B"),
		kill(2, 700, "E", "F"),
		kill(1, 100, "B", "A"),
	}
	kills[3].Headshot = true
	kills[3].Distance = 812.5

	duels := EntryDuels(kills)
	if len(duels) != 2 {
		t.Fatalf("got %d entry duels, want 2", len(duels))
	}
	if d := duels[0]; d.Round != 1 || d.Tick != 100 || d.WinnerID != "B" || d.LoserID != "A" || !d.Headshot || d.Distance != 812.5 {
		t.Errorf("round 1 duel = %+v", d)
	}
	if d := duels[1]; d.Round != 2 || d.Tick != 700 || d.WinnerID != "E" {
		t.Errorf("round 2 duel = %+v", d)
	}
}

func TestNoKillsNoEntryNoClutch(t *testing.T) {
	kills := []model.Kill{kill(1, 10, "A", "B"), kill(1, 20, "A", "C"), kill(1, 30, "A", "D")}
	for _, d := range EntryDuels(kills) {
		if d.Round == 2 {
			t.Error("round 2 has no kills but produced an entry duel")
		}
	}
	for _, c := range Clutches(kills, bounds(2)) {
		if c.Round == 2 {
			t.Error("round 2 has no kills but produced a clutch")
		}
	}
	if got := EntryDuels(nil); len(got) != 0 {
		t.Errorf("EntryDuels(nil) = %v", got)
	}
}

func TestTradeWithinWindow(t *testing.T) {
	kills := []model.Kill{
		kill(5, 100, "A", "B"),
		kill(5, 250, "B2", "A"),
	}
	trades := Trades(kills)
	if len(trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(trades))
	}
	tr := trades[0]
	if tr.Round != 5 || tr.OriginalKillTick != 100 || tr.TradeTick != 250 ||
		tr.OriginalKillerID != "A" || tr.OriginalVictimID != "B" || tr.TraderID != "B2" {
		t.Errorf("trade = %+v", tr)
	}
	if want := 150.0 / NominalTickRate; tr.TimeToTrade != want {
		t.Errorf("TimeToTrade = %v, want %v", tr.TimeToTrade, want)
	}
}

func TestTradeWindowBoundary(t *testing.T) {
	window := int(TradeWindowSeconds * NominalTickRate)
	cases := []struct {
		name  string
		gap   int
		trade bool
	}{
		{"exactly at window", window, true},
		{"one tick past", window + 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Trades([]model.Kill{kill(1, 0, "A", "B"), kill(1, tc.gap, "C", "A")})
			if (len(got) == 1) != tc.trade {
				t.Errorf("gap %d: trades = %v, want trade=%v", tc.gap, got, tc.trade)
			}
		})
	}
}

func TestTradeScanStopsAtRoundChangeAndWindow(t *testing.T) {
	kills := []model.Kill{
		kill(1, 100, "A", "B"),
		kill(2, 110, "C", "A"),
	}
	if got := Trades(kills); len(got) != 0 {
		t.Errorf("cross-round trade recorded: %+v", got)
	}

	kills = []model.Kill{
		kill(1, 0, "A", "B"),
		kill(1, 500, "X", "Y"),
		kill(1, 510, "C", "A"),
	}
	if got := Trades(kills); len(got) != 0 {
		t.Errorf("trade recorded past the window: %+v", got)
	}
}

func TestTradeSkipsAbsentAttacker(t *testing.T) {
	kills := []model.Kill{
		kill(1, 100, "", "B"),
		kill(1, 120, "C", ""),
	}
	if got := Trades(kills); len(got) != 0 {
		t.Errorf("trades = %+v", got)
	}
}

// The same later kill can be the trade for several earlier kills by the same
// attacker. This mirrors the established output and is kept on purpose.
func TestTradeReusesLaterKillKnownLimitation(t *testing.T) {
	kills := []model.Kill{
		kill(3, 100, "A", "B"),
		kill(3, 120, "A", "C"),
		kill(3, 200, "D", "A"),
	}
	trades := Trades(kills)
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	for _, tr := range trades {
		if tr.TradeTick != 200 || tr.TraderID != "D" {
			t.Errorf("trade = %+v, want both matched to the kill at 200", tr)
		}
	}
}

func TestClutchThreeKillsSameAttacker(t *testing.T) {
	kills := []model.Kill{
		kill(1, 20, "A", "C"),
		kill(1, 10, "A", "B"),
		kill(1, 30, "A", "D"),
	}
	cs := Clutches(kills, bounds(1))
	if len(cs) != 1 {
		t.Fatalf("got %d clutches, want 1", len(cs))
	}
	c := cs[0]
	if c.SteamID != "A" || c.KillsInClutch != 3 || c.StartTick != 10 || !c.Won || c.Round != 1 {
		t.Errorf("clutch = %+v", c)
	}
}

func TestClutchAtMostOnePerRound(t *testing.T) {
	kills := []model.Kill{
		kill(1, 10, "A", "X1"),
		kill(1, 20, "B", "X2"),
		kill(1, 30, "A", "X3"),
		kill(1, 40, "B", "X4"),
		kill(1, 50, "A", "X5"),
		kill(1, 60, "B", "X6"),
	}
	cs := Clutches(kills, bounds(1))
	if len(cs) != 1 || cs[0].SteamID != "A" || cs[0].KillsInClutch != 3 {
		t.Errorf("clutches = %+v", cs)
	}
}

func TestClutchNeedsTwoLaterKills(t *testing.T) {
	kills := []model.Kill{
		kill(1, 10, "A", "B"),
		kill(1, 20, "A", "C"),
		kill(1, 30, "E", "F"),
	}
	if cs := Clutches(kills, bounds(1)); len(cs) != 0 {
		t.Errorf("clutches = %+v", cs)
	}
}

func TestClutchIgnoresRoundsWithoutBoundary(t *testing.T) {
	kills := []model.Kill{
		kill(2, 10, "A", "B"),
		kill(2, 20, "A", "C"),
		kill(2, 30, "A", "D"),
	}
	if cs := Clutches(kills, bounds(1)); len(cs) != 0 {
		t.Errorf("clutches = %+v", cs)
	}
}

func TestInputsNotMutated(t *testing.T) {
	kills := []model.Kill{kill(1, 30, "A", "B"), kill(1, 10, "C", "D")}
	_ = EntryDuels(kills)
	_ = Trades(kills)
	_ = Clutches(kills, bounds(1))
	if kills[0].Tick != 30 || kills[1].Tick != 10 {
		t.Error("kill slice was reordered")
	}
}
