package parser

import (
	"fmt"
	"os"

	demoinfocs "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs"
	common "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/events"

	"github.com/pable/cs-replay-analyzer/internal/replay"
)

type propFunc func(pl *common.Player) any

// props maps snapshot property names to player accessors. Unknown names are
// ignored by Snapshots.
var props = map[string]propFunc{
	replay.PropName:           func(pl *common.Player) any { return pl.Name },
	replay.PropTeamNum:        func(pl *common.Player) any { return int(pl.Team) },
	replay.PropX:              func(pl *common.Player) any { return pl.Position().X },
	replay.PropY:              func(pl *common.Player) any { return pl.Position().Y },
	replay.PropZ:              func(pl *common.Player) any { return pl.Position().Z },
	replay.PropVelocityX:      func(pl *common.Player) any { return pl.Velocity().X },
	replay.PropVelocityY:      func(pl *common.Player) any { return pl.Velocity().Y },
	replay.PropVelocityZ:      func(pl *common.Player) any { return pl.Velocity().Z },
	replay.PropYaw:            func(pl *common.Player) any { return float64(pl.ViewDirectionX()) },
	replay.PropPitch:          func(pl *common.Player) any { return float64(pl.ViewDirectionY()) },
	replay.PropHealth:         func(pl *common.Player) any { return pl.Health() },
	replay.PropArmorValue:     func(pl *common.Player) any { return pl.Armor() },
	replay.PropHasHelmet:      func(pl *common.Player) any { return pl.HasHelmet() },
	replay.PropHasDefuser:     func(pl *common.Player) any { return pl.HasDefuseKit() },
	replay.PropIsAlive:        func(pl *common.Player) any { return pl.IsAlive() },
	replay.PropBalance:        func(pl *common.Player) any { return pl.Money() },
	replay.PropEquipmentValue: func(pl *common.Player) any { return pl.EquipmentValueCurrent() },
	replay.PropCashSpent:      func(pl *common.Player) any { return pl.MoneySpentThisRound() },
	replay.PropActiveWeapon:   func(pl *common.Player) any { return className(pl.ActiveWeapon()) },
	replay.PropIsScoped:       func(pl *common.Player) any { return pl.IsScoped() },
	replay.PropIsWalking:      func(pl *common.Player) any { return pl.IsWalking() },
	replay.PropInCrouch:       func(pl *common.Player) any { return pl.IsDucking() },
	replay.PropIsAirborne:     func(pl *common.Player) any { return pl.IsAirborne() },
}

// Snapshots re-reads the demo and records the requested properties of every
// playing participant at the first frame of each requested tick. A nil ticks
// slice samples every tick.
func (s *DemoSource) Snapshots(names []string, ticks []int) ([]replay.Row, error) {
	if ticks != nil && len(ticks) == 0 {
		return nil, nil
	}
	var want map[int]struct{}
	if ticks != nil {
		want = make(map[int]struct{}, len(ticks))
		for _, t := range ticks {
			want[t] = struct{}{}
		}
	}
	fns := make(map[string]propFunc, len(names))
	for _, n := range names {
		if fn, ok := props[n]; ok {
			fns[n] = fn
		}
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open demo: %w", err)
	}
	defer f.Close()

	p := demoinfocs.NewParser(f)
	defer p.Close()

	var rows []replay.Row
	done := make(map[int]bool)
	p.RegisterEventHandler(func(events.FrameDone) {
		tick := p.GameState().IngameTick()
		if want != nil {
			if _, ok := want[tick]; !ok {
				return
			}
		}
		if done[tick] {
			return
		}
		done[tick] = true
		for _, pl := range p.GameState().Participants().Playing() {
			if pl == nil || pl.SteamID64 == 0 {
				continue
			}
			row := replay.Row{
				replay.ColTick:     tick,
				replay.PropSteamID: steamID(pl),
			}
			for n, fn := range fns {
				row[n] = fn(pl)
			}
			rows = append(rows, row)
		}
	})

	if err := p.ParseToEnd(); err != nil {
		return nil, fmt.Errorf("parse demo: %w", err)
	}
	return rows, nil
}
