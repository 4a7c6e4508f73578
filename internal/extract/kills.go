package extract

import (
	"github.com/sirupsen/logrus"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
	"github.com/pable/cs-replay-analyzer/internal/rounds"
	"github.com/pable/cs-replay-analyzer/internal/statejoin"
	"github.com/pable/cs-replay-analyzer/internal/weapons"
)

var killStateProps = []string{replay.PropX, replay.PropY, replay.PropZ}

// DecodeKill coerces one player_death row. It reports false when the row has
// no usable tick.
func DecodeKill(r replay.Row) (model.RawKill, bool) {
	tick, ok := r.Tick()
	if !ok {
		return model.RawKill{}, false
	}
	return model.RawKill{
		Tick:          tick,
		AttackerID:    r.IDOrEmpty(replay.ColAttackerSteamID),
		VictimID:      r.IDOrEmpty(replay.ColUserSteamID),
		AssisterID:    r.IDOrEmpty(replay.ColAssisterSteamID),
		AttackerName:  r.String(replay.ColAttackerName),
		VictimName:    r.String(replay.ColUserName),
		Weapon:        weapons.Normalize(r.String(replay.ColWeapon)),
		Headshot:      r.Bool(replay.ColHeadshot, false),
		Penetrated:    r.Bool(replay.ColPenetrated, false),
		AttackerBlind: r.Bool(replay.ColAttackerBlind, false),
		NoScope:       r.Bool(replay.ColNoScope, false),
		ThroughSmoke:  r.Bool(replay.ColThruSmoke, false),
		AssistedFlash: r.Bool(replay.ColAssistedFlash, false),
	}, true
}

// Kills extracts every kill with attacker and victim positions resolved at
// the kill tick. When the position join fails the kills are still returned
// with zero positions.
func Kills(src replay.Source, ix *rounds.Index, log logrus.FieldLogger) ([]model.Kill, error) {
	rows, err := table(src, replay.EventPlayerDeath)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.Kill{}, nil
	}

	join, err := statejoin.Build(src, killStateProps, distinctTicks(rows))
	if err != nil {
		log.WithField("category", model.CategoryKill).WithError(err).Warn("kill positions unavailable")
	}

	kills := make([]model.Kill, 0, len(rows))
	for i, r := range rows {
		raw, ok := DecodeKill(r)
		if !ok {
			skipRow(log, model.CategoryKill, i, "no tick")
			continue
		}
		kills = append(kills, enrichKill(raw, ix, join))
	}
	return kills, nil
}

func enrichKill(raw model.RawKill, ix *rounds.Index, join *statejoin.Join) model.Kill {
	attackerPos := join.Position(raw.Tick, raw.AttackerID)
	victimPos := join.Position(raw.Tick, raw.VictimID)
	return model.Kill{
		Tick:             raw.Tick,
		Round:            ix.RoundFor(raw.Tick),
		AttackerID:       raw.AttackerID,
		AttackerName:     raw.AttackerName,
		VictimID:         raw.VictimID,
		VictimName:       raw.VictimName,
		AssisterID:       raw.AssisterID,
		Weapon:           raw.Weapon,
		WeaponCategory:   weapons.CategoryOf(raw.Weapon),
		Headshot:         raw.Headshot,
		Penetrated:       raw.Penetrated,
		AttackerBlind:    raw.AttackerBlind,
		NoScope:          raw.NoScope,
		ThroughSmoke:     raw.ThroughSmoke,
		AssistedFlash:    raw.AssistedFlash,
		AttackerPosition: attackerPos,
		VictimPosition:   victimPos,
		Distance:         attackerPos.Distance(victimPos),
	}
}
