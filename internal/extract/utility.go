package extract

import (
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
	"github.com/pable/cs-replay-analyzer/internal/rounds"
)

// GrenadeTables maps each detonation event table to its grenade type.
var GrenadeTables = []struct {
	Event string
	Type  string
}{
	{replay.EventFlashDetonate, "flash"},
	{replay.EventSmokeDetonate, "smoke"},
	{replay.EventHEDetonate, "he"},
	{replay.EventInfernoStart, "molotov"},
	{replay.EventDecoyStarted, "decoy"},
}

// BombTables maps each bomb event table to its action type.
var BombTables = []struct {
	Event string
	Type  string
}{
	{replay.EventBombPlanted, "planted"},
	{replay.EventBombDefused, "defused"},
	{replay.EventBombExploded, "exploded"},
	{replay.EventBombDropped, "dropped"},
	{replay.EventBombPickup, "pickup"},
	{replay.EventBombBeginPlant, "beginplant"},
	{replay.EventBombAbortPlant, "abortplant"},
	{replay.EventBombBeginDefuse, "begindefuse"},
	{replay.EventBombAbortDefuse, "abortdefuse"},
}

func DecodeGrenade(r replay.Row, typ string) (model.RawGrenade, bool) {
	tick, ok := r.Tick()
	if !ok {
		return model.RawGrenade{}, false
	}
	thrower, ok := r.ID(replay.ColUserSteamID)
	if !ok {
		thrower = r.IDOrEmpty(replay.ColEntityID)
	}
	return model.RawGrenade{
		Tick:      tick,
		Type:      typ,
		ThrowerID: thrower,
		Position:  vecAt(r),
	}, true
}

// Grenades extracts detonations of every grenade type, ordered by tick. A
// failing table only loses its own type; an error is returned only when
// every table failed.
func Grenades(src replay.Source, ix *rounds.Index, log logrus.FieldLogger) ([]model.Grenade, error) {
	out := []model.Grenade{}
	var errs []error
	for _, gt := range GrenadeTables {
		rows, err := table(src, gt.Event)
		if err != nil {
			log.WithField("category", model.CategoryGrenade).WithError(err).Warn("grenade table unavailable")
			errs = append(errs, err)
			continue
		}
		for i, r := range rows {
			g, ok := DecodeGrenade(r, gt.Type)
			if !ok {
				skipRow(log, model.CategoryGrenade, i, "no tick")
				continue
			}
			out = append(out, model.Grenade{
				Type:      g.Type,
				Tick:      g.Tick,
				Round:     ix.RoundFor(g.Tick),
				ThrowerID: g.ThrowerID,
				Position:  g.Position,
			})
		}
	}
	if len(errs) == len(GrenadeTables) {
		return nil, errors.Join(errs...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out, nil
}

func DecodeBlind(r replay.Row) (model.RawBlind, bool) {
	tick, ok := r.Tick()
	if !ok {
		return model.RawBlind{}, false
	}
	return model.RawBlind{
		Tick:       tick,
		VictimID:   r.IDOrEmpty(replay.ColUserSteamID),
		AttackerID: r.IDOrEmpty(replay.ColAttackerSteamID),
		Duration:   r.Float(replay.ColBlindDuration, 0),
		EntityID:   r.Int(replay.ColEntityID, 0),
	}, true
}

// Blinds extracts player_blind events.
func Blinds(src replay.Source, ix *rounds.Index, log logrus.FieldLogger) ([]model.PlayerBlind, error) {
	rows, err := table(src, replay.EventPlayerBlind)
	if err != nil {
		return nil, err
	}
	out := make([]model.PlayerBlind, 0, len(rows))
	for i, r := range rows {
		b, ok := DecodeBlind(r)
		if !ok {
			skipRow(log, model.CategoryBlind, i, "no tick")
			continue
		}
		out = append(out, model.PlayerBlind{
			Tick:       b.Tick,
			Round:      ix.RoundFor(b.Tick),
			VictimID:   b.VictimID,
			AttackerID: b.AttackerID,
			Duration:   b.Duration,
			EntityID:   b.EntityID,
		})
	}
	return out, nil
}

func DecodeBombAction(r replay.Row, typ string) (model.RawBombAction, bool) {
	tick, ok := r.Tick()
	if !ok {
		return model.RawBombAction{}, false
	}
	a := model.RawBombAction{
		Tick:    tick,
		Type:    typ,
		ActorID: r.IDOrEmpty(replay.ColUserSteamID),
	}
	if r.Has(replay.ColSite) {
		site := r.String(replay.ColSite)
		a.Site = &site
	}
	if typ == "begindefuse" || typ == "defused" {
		kit := r.Bool(replay.ColHasKit, false)
		a.HasKit = &kit
	}
	if r.Has(replay.ColX) {
		pos := vecAt(r)
		a.Position = &pos
	}
	return a, true
}

// BombEvents extracts all bomb actions. As with grenades, each event table
// fails on its own.
func BombEvents(src replay.Source, ix *rounds.Index, log logrus.FieldLogger) ([]model.BombEvent, error) {
	out := []model.BombEvent{}
	var errs []error
	for _, bt := range BombTables {
		rows, err := table(src, bt.Event)
		if err != nil {
			log.WithField("category", model.CategoryBomb).WithError(err).Warn("bomb table unavailable")
			errs = append(errs, err)
			continue
		}
		for i, r := range rows {
			a, ok := DecodeBombAction(r, bt.Type)
			if !ok {
				skipRow(log, model.CategoryBomb, i, "no tick")
				continue
			}
			out = append(out, model.BombEvent{
				Type:     a.Type,
				Tick:     a.Tick,
				Round:    ix.RoundFor(a.Tick),
				ActorID:  a.ActorID,
				Site:     a.Site,
				HasKit:   a.HasKit,
				Position: a.Position,
			})
		}
	}
	if len(errs) == len(BombTables) {
		return nil, errors.Join(errs...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out, nil
}
