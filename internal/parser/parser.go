// Package parser adapts demoinfocs-golang to replay.Source. Opening a demo
// runs one full pass that materializes every game event table, the header and
// the server convars; each snapshot request then runs its own pass that
// samples player state at the requested ticks.
package parser

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strconv"

	demoinfocs "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs"
	common "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/events"

	"github.com/pable/cs-replay-analyzer/internal/replay"
)

// DemoSource is a replay.Source backed by a demo file on disk.
type DemoSource struct {
	Path string
	Hash string // hex SHA-256 of the demo file

	tables *replay.Tables
}

var _ replay.Source = (*DemoSource)(nil)

// Open hashes and decodes the demo at path.
func Open(path string) (*DemoSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open demo: %w", err)
	}
	defer f.Close()

	// Hash file for idempotency key.
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hash demo: %w", err)
	}
	src := &DemoSource{
		Path:   path,
		Hash:   fmt.Sprintf("%x", h.Sum(nil)),
		tables: replay.NewTables(),
	}

	// Seek back to start for the parser.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek demo: %w", err)
	}
	if err := src.readEvents(f); err != nil {
		return nil, err
	}
	return src, nil
}

func (s *DemoSource) Events(name string) ([]replay.Row, error) { return s.tables.Events(name) }
func (s *DemoSource) Header() (replay.Header, error)         { return s.tables.Header() }
func (s *DemoSource) ConVars() (map[string]string, error)     { return s.tables.ConVars() }

// readEvents runs the first pass.
func (s *DemoSource) readEvents(r io.Reader) error {
	p := demoinfocs.NewParser(r)
	defer p.Close()

	t := s.tables
	gs := p.GameState
	var lastTick int

	row := func(cols ...any) replay.Row {
		out := replay.Row{replay.ColTick: gs().IngameTick()}
		for i := 0; i+1 < len(cols); i += 2 {
			out[cols[i].(string)] = cols[i+1]
		}
		return out
	}
	warmup := func() bool { return gs().IsWarmupPeriod() }

	p.RegisterEventHandler(func(e events.ConVarsUpdated) {
		for k, v := range e.UpdatedConVars {
			t.Vars[k] = v
		}
	})

	p.RegisterEventHandler(func(e events.RoundEnd) {
		if warmup() {
			return
		}
		t.Add(replay.EventRoundEnd, row(
			replay.ColWinner, teamLabel(e.Winner),
			replay.ColReason, int(e.Reason),
		))
	})

	p.RegisterEventHandler(func(e events.RoundFreezetimeEnd) {
		if warmup() {
			return
		}
		t.Add(replay.EventRoundFreezeEnd, row())
	})

	p.RegisterEventHandler(func(e events.Kill) {
		if warmup() || e.Victim == nil {
			return
		}
		t.Add(replay.EventPlayerDeath, row(
			replay.ColAttackerSteamID, steamID(e.Killer),
			replay.ColAttackerName, playerName(e.Killer),
			replay.ColUserSteamID, steamID(e.Victim),
			replay.ColUserName, playerName(e.Victim),
			replay.ColAssisterSteamID, steamID(e.Assister),
			replay.ColWeapon, className(e.Weapon),
			replay.ColHeadshot, e.IsHeadshot,
			replay.ColPenetrated, e.PenetratedObjects > 0,
			replay.ColAttackerBlind, e.AttackerBlind,
			replay.ColNoScope, e.NoScope,
			replay.ColThruSmoke, e.ThroughSmoke,
			replay.ColAssistedFlash, e.AssistedFlash,
		))
	})

	p.RegisterEventHandler(func(e events.PlayerHurt) {
		if warmup() || e.Player == nil {
			return
		}
		t.Add(replay.EventPlayerHurt, row(
			replay.ColAttackerSteamID, steamID(e.Attacker),
			replay.ColUserSteamID, steamID(e.Player),
			replay.ColDmgHealth, e.HealthDamage,
			replay.ColDmgArmor, e.ArmorDamage,
			replay.ColHealth, e.Health,
			replay.ColArmor, e.Armor,
			replay.ColWeapon, className(e.Weapon),
			replay.ColHitGroup, hitGroupLabel(e.HitGroup),
		))
	})

	p.RegisterEventHandler(func(e events.WeaponFire) {
		if warmup() || e.Shooter == nil {
			return
		}
		t.Add(replay.EventWeaponFire, row(
			replay.ColUserSteamID, steamID(e.Shooter),
			replay.ColWeapon, className(e.Weapon),
			replay.ColSilenced, silenced(e.Weapon),
		))
	})

	p.RegisterEventHandler(func(e events.PlayerFlashed) {
		if warmup() || e.Player == nil {
			return
		}
		dur := e.FlashDuration()
		if dur <= 0 {
			return
		}
		t.Add(replay.EventPlayerBlind, row(
			replay.ColUserSteamID, steamID(e.Player),
			replay.ColAttackerSteamID, steamID(e.Attacker),
			replay.ColBlindDuration, dur.Seconds(),
			replay.ColEntityID, e.Player.EntityID,
		))
	})

	grenade := func(table string, g events.GrenadeEvent) {
		if warmup() {
			return
		}
		t.Add(table, row(
			replay.ColUserSteamID, steamID(g.Thrower),
			replay.ColEntityID, g.GrenadeEntityID,
			replay.ColX, g.Position.X,
			replay.ColY, g.Position.Y,
			replay.ColZ, g.Position.Z,
		))
	}
	p.RegisterEventHandler(func(e events.FlashExplode) { grenade(replay.EventFlashDetonate, e.GrenadeEvent) })
	p.RegisterEventHandler(func(e events.SmokeStart) { grenade(replay.EventSmokeDetonate, e.GrenadeEvent) })
	p.RegisterEventHandler(func(e events.HeExplode) { grenade(replay.EventHEDetonate, e.GrenadeEvent) })
	p.RegisterEventHandler(func(e events.FireGrenadeStart) { grenade(replay.EventInfernoStart, e.GrenadeEvent) })
	p.RegisterEventHandler(func(e events.DecoyStart) { grenade(replay.EventDecoyStarted, e.GrenadeEvent) })

	bomb := func(table string, pl *common.Player, cols ...any) {
		if warmup() {
			return
		}
		cols = append(cols, replay.ColUserSteamID, steamID(pl))
		if pl != nil {
			pos := pl.Position()
			cols = append(cols, replay.ColX, pos.X, replay.ColY, pos.Y, replay.ColZ, pos.Z)
		}
		t.Add(table, row(cols...))
	}
	p.RegisterEventHandler(func(e events.BombPlanted) {
		bomb(replay.EventBombPlanted, e.Player, siteCols(e.Site)...)
	})
	p.RegisterEventHandler(func(e events.BombDefused) {
		bomb(replay.EventBombDefused, e.Player, append(siteCols(e.Site), replay.ColHasKit, e.Player != nil && e.Player.HasDefuseKit())...)
	})
	p.RegisterEventHandler(func(e events.BombExplode) {
		bomb(replay.EventBombExploded, e.Player, siteCols(e.Site)...)
	})
	p.RegisterEventHandler(func(e events.BombPlantBegin) {
		bomb(replay.EventBombBeginPlant, e.Player, siteCols(e.Site)...)
	})
	p.RegisterEventHandler(func(e events.BombPlantAborted) { bomb(replay.EventBombAbortPlant, e.Player) })
	p.RegisterEventHandler(func(e events.BombDefuseStart) {
		bomb(replay.EventBombBeginDefuse, e.Player, replay.ColHasKit, e.HasKit)
	})
	p.RegisterEventHandler(func(e events.BombDefuseAborted) { bomb(replay.EventBombAbortDefuse, e.Player) })
	p.RegisterEventHandler(func(e events.BombDropped) { bomb(replay.EventBombDropped, e.Player) })
	p.RegisterEventHandler(func(e events.BombPickup) { bomb(replay.EventBombPickup, e.Player) })

	// Demos carry no purchase event; a pickup that raises the player's round
	// spend is treated as a buy.
	spent := make(map[uint64]int)
	p.RegisterEventHandler(func(e events.ItemPickup) {
		if warmup() || e.Player == nil || e.Weapon == nil {
			return
		}
		now := e.Player.MoneySpentThisRound()
		before := spent[e.Player.SteamID64]
		spent[e.Player.SteamID64] = now
		if now <= before {
			return
		}
		t.Add(replay.EventItemPurchase, row(
			replay.ColUserSteamID, steamID(e.Player),
			replay.ColWeapon, className(e.Weapon),
			replay.ColTeam, int(e.Player.Team),
		))
	})
	p.RegisterEventHandler(func(e events.RoundStart) {
		clear(spent)
	})

	p.RegisterEventHandler(func(e events.FrameDone) {
		lastTick = gs().IngameTick()
	})

	if err := p.ParseToEnd(); err != nil {
		return fmt.Errorf("parse demo: %w", err)
	}

	header := p.Header()
	tickRate := p.TickRate()
	total := header.PlaybackTicks
	if total <= 0 {
		total = lastTick
	}
	playback := header.PlaybackTime.Seconds()
	if playback <= 0 && tickRate > 0 {
		playback = float64(total) / tickRate
	}
	t.Head = replay.Header{
		MapName:      header.MapName,
		PlaybackTime: playback,
		TickRate:     tickRate,
		TotalTicks:   total,
		ServerName:   header.ServerName,
		DemoVersion:  strconv.Itoa(header.NetworkProtocol),
	}
	return nil
}

func siteCols(site events.Bombsite) []any {
	if site != events.BombsiteA && site != events.BombsiteB {
		return nil
	}
	return []any{replay.ColSite, string(rune(site))}
}

// steamID renders a player's SteamID64, or the "0" sentinel for no player.
func steamID(pl *common.Player) string {
	if pl == nil {
		return "0"
	}
	return strconv.FormatUint(pl.SteamID64, 10)
}

func playerName(pl *common.Player) string {
	if pl == nil {
		return ""
	}
	return pl.Name
}
