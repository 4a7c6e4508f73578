package extract

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pable/cs-replay-analyzer/internal/coerce"
	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
	"github.com/pable/cs-replay-analyzer/internal/rounds"
	"github.com/pable/cs-replay-analyzer/internal/weapons"
)

var hitGroupLabels = map[string]int{
	"generic":  0,
	"head":     1,
	"chest":    2,
	"stomach":  3,
	"leftarm":  4,
	"rightarm": 5,
	"leftleg":  6,
	"rightleg": 7,
	"neck":     1,
	"gear":     10,
}

// HitGroup coerces a hitgroup label or numeric code.
func HitGroup(v any) int {
	if s, ok := v.(string); ok {
		if code, ok := hitGroupLabels[strings.ToLower(strings.TrimSpace(s))]; ok {
			return code
		}
		return 0
	}
	return coerce.Int(v, 0)
}

func DecodeDamage(r replay.Row) (model.RawDamage, bool) {
	tick, ok := r.Tick()
	if !ok {
		return model.RawDamage{}, false
	}
	return model.RawDamage{
		Tick:            tick,
		AttackerID:      r.IDOrEmpty(replay.ColAttackerSteamID),
		VictimID:        r.IDOrEmpty(replay.ColUserSteamID),
		Damage:          r.Int(replay.ColDmgHealth, 0),
		DamageArmor:     r.Int(replay.ColDmgArmor, 0),
		HealthRemaining: r.Int(replay.ColHealth, 0),
		ArmorRemaining:  r.Int(replay.ColArmor, 0),
		Weapon:          weapons.Normalize(r.String(replay.ColWeapon)),
		HitGroup:        HitGroup(r[replay.ColHitGroup]),
	}, true
}

// Damages extracts player_hurt events.
func Damages(src replay.Source, ix *rounds.Index, log logrus.FieldLogger) ([]model.Damage, error) {
	rows, err := table(src, replay.EventPlayerHurt)
	if err != nil {
		return nil, err
	}
	out := make([]model.Damage, 0, len(rows))
	for i, r := range rows {
		d, ok := DecodeDamage(r)
		if !ok {
			skipRow(log, model.CategoryDamage, i, "no tick")
			continue
		}
		out = append(out, model.Damage{
			Tick:            d.Tick,
			Round:           ix.RoundFor(d.Tick),
			AttackerID:      d.AttackerID,
			VictimID:        d.VictimID,
			Damage:          d.Damage,
			DamageArmor:     d.DamageArmor,
			HealthRemaining: d.HealthRemaining,
			ArmorRemaining:  d.ArmorRemaining,
			Weapon:          d.Weapon,
			WeaponCategory:  weapons.CategoryOf(d.Weapon),
			HitGroup:        d.HitGroup,
		})
	}
	return out, nil
}
