package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pable/cs-replay-analyzer/internal/coerce"
	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
	"github.com/pable/cs-replay-analyzer/internal/rounds"
	"github.com/pable/cs-replay-analyzer/internal/statejoin"
	"github.com/pable/cs-replay-analyzer/internal/weapons"
)

// DefaultTickRate is reported when the header carries no tick rate.
const DefaultTickRate = 64.0

// Match timestamps outside this open range are not plausible.
const (
	minMatchTimestamp = 1.5e9
	maxMatchTimestamp = 2.1e9
)

// matchDateKeys are tried in order before the substring fallback.
var matchDateKeys = []string{
	"sv_server_start_time",
	"server_start_time",
	"match_start_time",
	"game_start_time",
}

var matchDateHints = []string{"time", "date", "stamp"}

// DefaultMetadata is what a replay without a readable header reports.
func DefaultMetadata() model.Metadata {
	return model.Metadata{Map: "unknown", TickRate: DefaultTickRate}
}

// Metadata reads the demo header and recovers the match date from server
// convars when one is present.
func Metadata(src replay.Source, log logrus.FieldLogger) (model.Metadata, error) {
	h, err := src.Header()
	if err != nil {
		return DefaultMetadata(), fmt.Errorf("header: %w", err)
	}
	md := model.Metadata{
		Map:         h.MapName,
		Duration:    h.PlaybackTime,
		TickRate:    h.TickRate,
		TotalTicks:  h.TotalTicks,
		ServerName:  h.ServerName,
		DemoVersion: h.DemoVersion,
	}
	if md.Map == "" {
		md.Map = "unknown"
	}
	if md.TickRate <= 0 || math.IsNaN(md.TickRate) {
		md.TickRate = DefaultTickRate
	}

	vars, err := src.ConVars()
	if err != nil {
		log.WithField("category", model.CategoryMetadata).WithError(err).Debug("convars unavailable")
		return md, nil
	}
	md.MatchDate = MatchDate(vars)
	return md, nil
}

// MatchDate recovers the match start from server convars: first the known
// keys in order, then any key whose name looks time related, in key order.
// It returns nil when nothing parses as a plausible Unix timestamp.
func MatchDate(vars map[string]string) *string {
	for _, k := range matchDateKeys {
		if s, ok := parseTimestamp(vars[k]); ok {
			return &s
		}
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !looksTimeRelated(k) {
			continue
		}
		if s, ok := parseTimestamp(vars[k]); ok {
			return &s
		}
	}
	return nil
}

func looksTimeRelated(key string) bool {
	key = strings.ToLower(key)
	for _, h := range matchDateHints {
		if strings.Contains(key, h) {
			return true
		}
	}
	return false
}

func parseTimestamp(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	ts := coerce.Float(v, math.NaN())
	if math.IsNaN(ts) || ts <= minMatchTimestamp || ts >= maxMatchTimestamp {
		return "", false
	}
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(time.RFC3339), true
}

var playerProps = []string{replay.PropName, replay.PropTeamNum}

// Players lists the identified participants in first-seen order, sampled at
// round end ticks. When no snapshot rows are available the attackers and
// victims of kills are used instead, with an unknown team.
func Players(src replay.Source, ix *rounds.Index, log logrus.FieldLogger) ([]model.Player, error) {
	var players []model.Player
	seen := make(map[string]bool)

	if ix.Len() > 0 {
		ticks := make([]int, 0, ix.Len())
		for _, rb := range ix.Boundaries() {
			ticks = append(ticks, rb.EndTick)
		}
		join, err := statejoin.Build(src, playerProps, ticks)
		if err != nil {
			log.WithField("category", model.CategoryPlayers).WithError(err).Warn("player snapshots unavailable")
		}
		for _, t := range join.Ticks() {
			for _, s := range join.At(t) {
				if seen[s.EntityID] {
					continue
				}
				seen[s.EntityID] = true
				players = append(players, model.Player{SteamID: s.EntityID, Name: s.Name, Team: s.Team})
			}
		}
	}
	if len(players) > 0 {
		return players, nil
	}

	rows, err := table(src, replay.EventPlayerDeath)
	if err != nil {
		return nil, err
	}
	players = []model.Player{}
	for _, r := range rows {
		for _, side := range [][2]string{
			{replay.ColAttackerSteamID, replay.ColAttackerName},
			{replay.ColUserSteamID, replay.ColUserName},
		} {
			id, ok := r.ID(side[0])
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			players = append(players, model.Player{SteamID: id, Name: coerce.String(r[side[1]], "Unknown")})
		}
	}
	return players, nil
}

var positionProps = []string{
	replay.PropX, replay.PropY, replay.PropZ,
	replay.PropVelocityX, replay.PropVelocityY, replay.PropVelocityZ,
	replay.PropHealth, replay.PropArmorValue, replay.PropIsAlive, replay.PropTeamNum,
	replay.PropIsScoped, replay.PropIsWalking, replay.PropInCrouch, replay.PropIsAirborne,
	replay.PropActiveWeapon, replay.PropBalance,
}

// SampleTicks returns 0, rate, 2*rate, ... below min(total, maxTicks).
func SampleTicks(total, maxTicks, rate int) []int {
	if rate < 1 {
		return nil
	}
	limit := min(total, maxTicks)
	var out []int
	for t := 0; t < limit; t += rate {
		out = append(out, t)
	}
	return out
}

// Positions samples living players every sampleRate ticks, up to maxTicks.
// Ticks with no living player are omitted.
func Positions(src replay.Source, sampleRate, maxTicks int, log logrus.FieldLogger) ([]model.PositionSnapshot, error) {
	h, err := src.Header()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	ticks := SampleTicks(h.TotalTicks, maxTicks, sampleRate)
	if len(ticks) == 0 {
		return []model.PositionSnapshot{}, nil
	}
	log.WithField("ticks", len(ticks)).Debug("sampling positions")

	join, err := statejoin.Build(src, positionProps, ticks)
	if err != nil {
		return nil, fmt.Errorf("position state: %w", err)
	}

	out := []model.PositionSnapshot{}
	for _, tick := range ticks {
		var entries []model.PositionEntry
		for _, s := range join.At(tick) {
			if !s.Alive {
				continue
			}
			entries = append(entries, model.PositionEntry{
				SteamID:   s.EntityID,
				X:         s.Position.X,
				Y:         s.Position.Y,
				Z:         s.Position.Z,
				VelocityX: s.Velocity.X,
				VelocityY: s.Velocity.Y,
				VelocityZ: s.Velocity.Z,
				Speed:     s.Velocity.HorizontalSpeed(),
				Health:    s.Health,
				Armor:     s.Armor,
				Team:      s.Team,
				Scoped:    s.Scoped,
				Walking:   s.Walking,
				Crouching: s.Crouching,
				Airborne:  s.Airborne,
				Weapon:    weapons.Normalize(s.ActiveWeapon),
				Balance:   s.Balance,
			})
		}
		if len(entries) > 0 {
			out = append(out, model.PositionSnapshot{Tick: tick, Players: entries})
		}
	}
	return out, nil
}
