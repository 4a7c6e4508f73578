// Package tactics derives entry duels, trades, and clutch situations from the
// enriched kill sequence. Trade and clutch detection are heuristics and are
// kept deliberately simple: see the individual functions for their limits.
package tactics

import (
	"sort"

	"github.com/pable/cs-replay-analyzer/internal/coerce"
	"github.com/pable/cs-replay-analyzer/internal/model"
)

const (
	// TradeWindowSeconds is the longest gap between a kill and the death of
	// its attacker that still counts as a trade.
	TradeWindowSeconds = 3.0
	// NominalTickRate converts tick gaps to seconds regardless of the
	// replay's real tick rate.
	NominalTickRate = 128.0
)

// sortedByRoundTick returns a copy of kills ordered by (round, tick).
func sortedByRoundTick(kills []model.Kill) []model.Kill {
	s := append([]model.Kill(nil), kills...)
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Round != s[j].Round {
			return s[i].Round < s[j].Round
		}
		return s[i].Tick < s[j].Tick
	})
	return s
}

// EntryDuels returns the first kill of every round that has one, in round
// order.
func EntryDuels(kills []model.Kill) []model.EntryDuel {
	out := []model.EntryDuel{}
	sorted := sortedByRoundTick(kills)
	for i, k := range sorted {
		if i > 0 && sorted[i-1].Round == k.Round {
			continue
		}
		out = append(out, model.EntryDuel{
			Round:    k.Round,
			Tick:     k.Tick,
			WinnerID: k.AttackerID,
			LoserID:  k.VictimID,
			Weapon:   k.Weapon,
			Headshot: k.Headshot,
			Distance: k.Distance,
		})
	}
	return out
}

// Trades pairs each kill with the first later kill in the same round whose
// victim is the original attacker, within TradeWindowSeconds. A kill yields
// at most one trade, but a later kill is not consumed once matched and may
// be reported as the trade of several earlier kills.
func Trades(kills []model.Kill) []model.Trade {
	out := []model.Trade{}
	sorted := sortedByRoundTick(kills)
	for i, k := range sorted {
		if coerce.IsAbsentID(k.AttackerID) {
			continue
		}
		for _, t := range sorted[i+1:] {
			if t.Round != k.Round {
				break
			}
			elapsed := float64(t.Tick-k.Tick) / NominalTickRate
			if elapsed > TradeWindowSeconds {
				break
			}
			if t.VictimID == k.AttackerID {
				out = append(out, model.Trade{
					Round:            k.Round,
					OriginalKillTick: k.Tick,
					TradeTick:        t.Tick,
					TimeToTrade:      elapsed,
					OriginalVictimID: k.VictimID,
					OriginalKillerID: k.AttackerID,
					TraderID:         t.AttackerID,
				})
				break
			}
		}
	}
	return out
}

// Clutches flags, for each recorded round with at least two kills, the first
// attacker who goes on to make at least two more kills in that round. It
// records at most one clutch per round, always as won, and never checks how
// many players were actually alive on either side. Kills in rounds without a
// boundary are ignored.
func Clutches(kills []model.Kill, bounds []model.RoundBoundary) []model.Clutch {
	byRound := make(map[int][]model.Kill)
	for _, k := range kills {
		byRound[k.Round] = append(byRound[k.Round], k)
	}

	out := []model.Clutch{}
	for _, rb := range bounds {
		rk := append([]model.Kill(nil), byRound[rb.RoundNumber]...)
		if len(rk) < 2 {
			continue
		}
		sort.SliceStable(rk, func(i, j int) bool { return rk[i].Tick < rk[j].Tick })

		for i, k := range rk {
			if len(rk)-i-1 < 2 {
				break
			}
			if coerce.IsAbsentID(k.AttackerID) {
				continue
			}
			later := 0
			for _, l := range rk[i+1:] {
				if l.AttackerID == k.AttackerID {
					later++
				}
			}
			if later >= 2 {
				out = append(out, model.Clutch{
					Round:         rb.RoundNumber,
					SteamID:       k.AttackerID,
					KillsInClutch: later + 1,
					StartTick:     k.Tick,
					Won:           true,
				})
				break
			}
		}
	}
	return out
}
