// Package rounds builds the round boundary table of a replay and attributes
// ticks to rounds.
package rounds

import (
	"sort"
	"strings"

	"github.com/pable/cs-replay-analyzer/internal/coerce"
	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
)

var winnerLabels = map[string]model.Team{
	"T":  model.TeamT,
	"CT": model.TeamCT,
}

var reasonLabels = map[string]int{
	"t_killed":      model.ReasonTKilled,
	"ct_killed":     model.ReasonCTKilled,
	"bomb_exploded": model.ReasonBombExploded,
	"bomb_defused":  model.ReasonBombDefused,
	"time_expired":  model.ReasonTimeExpired,
	"target_saved":  model.ReasonTimeExpired,
}

// Index is the immutable round boundary table, sorted by end tick. It is safe
// for concurrent use.
type Index struct {
	bounds []model.RoundBoundary
}

// FromRows builds an Index from round_end rows. Rows without a usable tick are
// skipped and counted in skipped. Rounds are numbered 1..n in end-tick order.
func FromRows(rows []replay.Row) (ix *Index, skipped int) {
	bounds := make([]model.RoundBoundary, 0, len(rows))
	for _, r := range rows {
		tick, ok := r.Tick()
		if !ok {
			skipped++
			continue
		}
		bounds = append(bounds, model.RoundBoundary{
			EndTick: tick,
			Winner:  Winner(r[replay.ColWinner]),
			Reason:  Reason(r[replay.ColReason]),
		})
	}
	return New(bounds), skipped
}

// New builds an Index from boundaries, sorting them by end tick and
// renumbering them contiguously from 1.
func New(bounds []model.RoundBoundary) *Index {
	b := append([]model.RoundBoundary(nil), bounds...)
	sort.SliceStable(b, func(i, j int) bool { return b[i].EndTick < b[j].EndTick })
	for i := range b {
		b[i].RoundNumber = i + 1
	}
	return &Index{bounds: b}
}

// RoundFor returns the first round whose end tick is >= tick, or the last
// round number + 1 when tick is past every boundary. An empty index always
// returns 1.
func (ix *Index) RoundFor(tick int) int {
	if ix == nil {
		return 1
	}
	i := sort.Search(len(ix.bounds), func(i int) bool { return ix.bounds[i].EndTick >= tick })
	if i == len(ix.bounds) {
		return ix.Last() + 1
	}
	return ix.bounds[i].RoundNumber
}

// Last returns the number of the final recorded round, or 0.
func (ix *Index) Last() int {
	if ix == nil || len(ix.bounds) == 0 {
		return 0
	}
	return ix.bounds[len(ix.bounds)-1].RoundNumber
}

// Len returns the number of boundaries.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.bounds)
}

// Boundaries returns a copy of the boundary table.
func (ix *Index) Boundaries() []model.RoundBoundary {
	if ix == nil {
		return []model.RoundBoundary{}
	}
	return append([]model.RoundBoundary{}, ix.bounds...)
}

// Winner coerces a side label ("T", "ct") or a numeric team code into a Team.
// Anything else is TeamUnknown.
func Winner(v any) model.Team {
	if s, ok := v.(string); ok {
		if t, ok := winnerLabels[strings.ToUpper(strings.TrimSpace(s))]; ok {
			return t
		}
	}
	switch t := model.Team(coerce.Int(v, 0)); t {
	case model.TeamT, model.TeamCT:
		return t
	}
	return model.TeamUnknown
}

// Reason coerces a reason label or a numeric reason code.
func Reason(v any) int {
	if s, ok := v.(string); ok {
		if code, ok := reasonLabels[strings.ToLower(strings.TrimSpace(s))]; ok {
			return code
		}
	}
	return coerce.Int(v, model.ReasonUnknown)
}
