package extract

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
	"github.com/pable/cs-replay-analyzer/internal/rounds"
	"github.com/pable/cs-replay-analyzer/internal/statejoin"
	"github.com/pable/cs-replay-analyzer/internal/weapons"
)

var economyProps = []string{
	replay.PropBalance, replay.PropEquipmentValue, replay.PropCashSpent,
	replay.PropHasHelmet, replay.PropHasDefuser, replay.PropArmorValue,
	replay.PropTeamNum, replay.PropActiveWeapon, replay.PropIsAlive,
}

func DecodePurchase(r replay.Row) (model.RawPurchase, bool) {
	tick, ok := r.Tick()
	if !ok {
		return model.RawPurchase{}, false
	}
	return model.RawPurchase{
		Tick:    tick,
		ActorID: r.IDOrEmpty(replay.ColUserSteamID),
		Item:    weapons.Normalize(r.String(replay.ColWeapon)),
		Team:    r.Int(replay.ColTeam, 0),
	}, true
}

// Purchases extracts item_purchase events.
func Purchases(src replay.Source, ix *rounds.Index, log logrus.FieldLogger) ([]model.Purchase, error) {
	rows, err := table(src, replay.EventItemPurchase)
	if err != nil {
		return nil, err
	}
	out := make([]model.Purchase, 0, len(rows))
	for i, r := range rows {
		p, ok := DecodePurchase(r)
		if !ok {
			skipRow(log, model.CategoryPurchase, i, "no tick")
			continue
		}
		out = append(out, model.Purchase{
			Tick:         p.Tick,
			Round:        ix.RoundFor(p.Tick),
			ActorID:      p.ActorID,
			Item:         p.Item,
			ItemCategory: weapons.CategoryOf(p.Item),
			Team:         p.Team,
		})
	}
	return out, nil
}

// Economy samples every living player's economy at each round's freeze-end
// tick. The n-th freeze end is round n.
func Economy(src replay.Source, log logrus.FieldLogger) ([]model.EconomyRound, error) {
	rows, err := table(src, replay.EventRoundFreezeEnd)
	if err != nil {
		return nil, err
	}
	var ticks []int
	for i, r := range rows {
		t, ok := r.Tick()
		if !ok {
			skipRow(log, model.CategoryEconomy, i, "no tick")
			continue
		}
		ticks = append(ticks, t)
	}
	if len(ticks) == 0 {
		return []model.EconomyRound{}, nil
	}

	join, err := statejoin.Build(src, economyProps, ticks)
	if err != nil {
		return nil, fmt.Errorf("economy state: %w", err)
	}

	out := make([]model.EconomyRound, 0, len(ticks))
	for i, tick := range ticks {
		er := model.EconomyRound{Round: i + 1, Tick: tick, Players: []model.EconomyEntry{}}
		for _, s := range join.At(tick) {
			if !s.Alive {
				continue
			}
			er.Players = append(er.Players, model.EconomyEntry{
				SteamID:        s.EntityID,
				Balance:        s.Balance,
				EquipmentValue: s.EquipmentValue,
				SpentThisRound: s.CashSpent,
				HasHelmet:      s.HasHelmet,
				HasDefuser:     s.HasDefuser,
				ArmorValue:     s.Armor,
				Team:           s.Team,
				Weapon:         weapons.Normalize(s.ActiveWeapon),
			})
		}
		out = append(out, er)
	}
	return out, nil
}
