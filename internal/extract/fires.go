package extract

import (
	"github.com/sirupsen/logrus"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
	"github.com/pable/cs-replay-analyzer/internal/rounds"
	"github.com/pable/cs-replay-analyzer/internal/statejoin"
	"github.com/pable/cs-replay-analyzer/internal/weapons"
)

var fireStateProps = []string{
	replay.PropX, replay.PropY, replay.PropZ,
	replay.PropVelocityX, replay.PropVelocityY, replay.PropVelocityZ,
	replay.PropYaw, replay.PropPitch,
	replay.PropIsScoped, replay.PropInCrouch, replay.PropIsAirborne,
}

func DecodeWeaponFire(r replay.Row) (model.RawWeaponFire, bool) {
	tick, ok := r.Tick()
	if !ok {
		return model.RawWeaponFire{}, false
	}
	return model.RawWeaponFire{
		Tick:     tick,
		ActorID:  r.IDOrEmpty(replay.ColUserSteamID),
		Weapon:   weapons.Normalize(r.String(replay.ColWeapon)),
		Silenced: r.Bool(replay.ColSilenced, false),
	}, true
}

// FireJoinTicks returns the ticks to request state for. Past MaxFireJoinTicks
// distinct ticks every second one is kept; fires at the others resolve to
// zero state.
func FireJoinTicks(ticks []int) []int {
	if len(ticks) <= MaxFireJoinTicks {
		return ticks
	}
	out := make([]int, 0, (len(ticks)+1)/2)
	for i := 0; i < len(ticks); i += 2 {
		out = append(out, ticks[i])
	}
	return out
}

// WeaponFires extracts weapon_fire events with the shooter's movement and
// view state at the firing tick.
func WeaponFires(src replay.Source, ix *rounds.Index, log logrus.FieldLogger) ([]model.WeaponFire, error) {
	rows, err := table(src, replay.EventWeaponFire)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.WeaponFire{}, nil
	}

	join, err := statejoin.Build(src, fireStateProps, FireJoinTicks(distinctTicks(rows)))
	if err != nil {
		log.WithField("category", model.CategoryWeaponFire).WithError(err).Warn("shooter state unavailable")
	}

	out := make([]model.WeaponFire, 0, len(rows))
	for i, r := range rows {
		f, ok := DecodeWeaponFire(r)
		if !ok {
			skipRow(log, model.CategoryWeaponFire, i, "no tick")
			continue
		}
		s, _ := join.Lookup(f.Tick, f.ActorID)
		speed := s.Velocity.HorizontalSpeed()
		out = append(out, model.WeaponFire{
			Tick:           f.Tick,
			Round:          ix.RoundFor(f.Tick),
			ActorID:        f.ActorID,
			Weapon:         f.Weapon,
			WeaponCategory: weapons.CategoryOf(f.Weapon),
			Silenced:       f.Silenced,
			Position:       s.Position,
			Velocity:       s.Velocity,
			Speed:          speed,
			View:           s.View,
			Scoped:         s.Scoped,
			Crouching:      s.Crouching,
			Airborne:       s.Airborne,
			Moving:         speed > MovingSpeed,
			CounterStrafed: speed < CounterStrafeSpeed,
		})
	}
	return out, nil
}
