// Package statejoin resolves (tick, entity) pairs to state snapshots for
// events that do not carry position or state inline.
package statejoin

import (
	"fmt"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
)

type key struct {
	tick int
	id   string
}

// Join is a read-only index of state samples. It is safe for concurrent use.
type Join struct {
	samples map[key]model.StateSample
	byTick  map[int][]model.StateSample
	ticks   []int
}

// Build requests props at ticks from src and indexes the result. A nil ticks
// slice scans the whole replay. Rows without a tick or an identified entity
// are dropped; for duplicate (tick, entity) rows the first one wins.
func Build(src replay.Source, props []string, ticks []int) (*Join, error) {
	rows, err := src.Snapshots(withKeyProps(props), ticks)
	if err != nil {
		return nil, fmt.Errorf("snapshots: %w", err)
	}
	return FromRows(rows), nil
}

// FromRows indexes already-fetched snapshot rows.
func FromRows(rows []replay.Row) *Join {
	j := &Join{
		samples: make(map[key]model.StateSample, len(rows)),
		byTick:  make(map[int][]model.StateSample),
	}
	for _, r := range rows {
		tick, ok := r.Tick()
		if !ok {
			continue
		}
		id, ok := r.ID(replay.PropSteamID)
		if !ok {
			continue
		}
		k := key{tick, id}
		if _, dup := j.samples[k]; dup {
			continue
		}
		s := decodeSample(tick, id, r)
		j.samples[k] = s
		if _, seen := j.byTick[tick]; !seen {
			j.ticks = append(j.ticks, tick)
		}
		j.byTick[tick] = append(j.byTick[tick], s)
	}
	return j
}

// Lookup returns the sample for (tick, id). When no row exists the zero
// sample is returned with ok == false.
func (j *Join) Lookup(tick int, id string) (model.StateSample, bool) {
	if j == nil {
		return model.StateSample{}, false
	}
	s, ok := j.samples[key{tick, id}]
	return s, ok
}

// Position returns the position of id at tick, or the zero vector.
func (j *Join) Position(tick int, id string) model.Vec3 {
	s, _ := j.Lookup(tick, id)
	return s.Position
}

// At returns the samples of one tick in source order.
func (j *Join) At(tick int) []model.StateSample {
	if j == nil {
		return nil
	}
	return j.byTick[tick]
}

// Ticks returns the distinct ticks present, in first-seen order.
func (j *Join) Ticks() []int {
	if j == nil {
		return nil
	}
	return append([]int(nil), j.ticks...)
}

// Len returns the number of indexed samples.
func (j *Join) Len() int {
	if j == nil {
		return 0
	}
	return len(j.samples)
}

func withKeyProps(props []string) []string {
	out := make([]string, 0, len(props)+1)
	hasID := false
	for _, p := range props {
		if p == replay.PropSteamID {
			hasID = true
		}
		out = append(out, p)
	}
	if !hasID {
		out = append(out, replay.PropSteamID)
	}
	return out
}

func decodeSample(tick int, id string, r replay.Row) model.StateSample {
	return model.StateSample{
		Tick:     tick,
		EntityID: id,
		Name:     r.String(replay.PropName),
		Team:     r.Int(replay.PropTeamNum, 0),
		Position: model.Vec3{
			X: r.Float(replay.PropX, 0),
			Y: r.Float(replay.PropY, 0),
			Z: r.Float(replay.PropZ, 0),
		},
		Velocity: model.Vec3{
			X: r.Float(replay.PropVelocityX, 0),
			Y: r.Float(replay.PropVelocityY, 0),
			Z: r.Float(replay.PropVelocityZ, 0),
		},
		View: model.ViewAngles{
			Yaw:   r.Float(replay.PropYaw, 0),
			Pitch: r.Float(replay.PropPitch, 0),
		},
		Health:         r.Int(replay.PropHealth, 100),
		Armor:          r.Int(replay.PropArmorValue, 0),
		Alive:          r.Bool(replay.PropIsAlive, true),
		Scoped:         r.Bool(replay.PropIsScoped, false),
		Walking:        r.Bool(replay.PropIsWalking, false),
		Crouching:      r.Bool(replay.PropInCrouch, false),
		Airborne:       r.Bool(replay.PropIsAirborne, false),
		HasHelmet:      r.Bool(replay.PropHasHelmet, false),
		HasDefuser:     r.Bool(replay.PropHasDefuser, false),
		Balance:        r.Int(replay.PropBalance, 0),
		EquipmentValue: r.Int(replay.PropEquipmentValue, 0),
		CashSpent:      r.Int(replay.PropCashSpent, 0),
		ActiveWeapon:   r.String(replay.PropActiveWeapon),
	}
}
