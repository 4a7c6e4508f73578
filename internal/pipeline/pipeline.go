// Package pipeline runs a complete analysis over one replay source: it builds
// the round index, fans out one task per event category, derives tactical
// events from the kills, and assembles the output record.
package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pable/cs-replay-analyzer/internal/extract"
	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
	"github.com/pable/cs-replay-analyzer/internal/rounds"
	"github.com/pable/cs-replay-analyzer/internal/tactics"
)

// ErrNoSource is returned by Run when no replay source is supplied.
var ErrNoSource = errors.New("no replay source")

// Options controls the optional, expensive parts of an analysis.
type Options struct {
	SampleRate       int  // ticks between position samples
	MaxPositionTicks int  // positions are sampled below this tick
	WeaponFires      bool // extract weapon_fire events
	Positions        bool // extract sampled positions
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		SampleRate:       64,
		MaxPositionTicks: 50000,
		WeaponFires:      true,
		Positions:        true,
	}
}

// Run analyzes src. The only error it returns is ErrNoSource; a category that
// fails is logged, left empty in the record, and counted in
// ParsingStats.TotalFailedCategories.
func Run(src replay.Source, opts Options, log logrus.FieldLogger) (*model.Record, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &runner{log: log}

	var ix *rounds.Index
	r.guard(model.CategoryRounds, func() error {
		rows, err := src.Events(replay.EventRoundEnd)
		if err != nil && !errors.Is(err, replay.ErrNoTable) {
			return fmt.Errorf("events %s: %w", replay.EventRoundEnd, err)
		}
		var skipped int
		ix, skipped = rounds.FromRows(rows)
		if skipped > 0 {
			log.WithFields(logrus.Fields{"category": model.CategoryRounds, "skipped": skipped}).Debug("skipped round_end rows")
		}
		return nil
	})
	if ix == nil {
		ix = rounds.New(nil)
	}

	rec := &model.Record{
		Version:  model.RecordVersion,
		Metadata: extract.DefaultMetadata(),
		Rounds:   ix.Boundaries(),
	}

	var g errgroup.Group
	g.Go(func() error {
		r.guard(model.CategoryMetadata, func() error {
			md, err := extract.Metadata(src, log)
			rec.Metadata = md
			return err
		})
		return nil
	})
	collect(&g, r, model.CategoryPlayers, &rec.Players, func() ([]model.Player, error) { return extract.Players(src, ix, log) })
	collect(&g, r, model.CategoryKill, &rec.Kills, func() ([]model.Kill, error) { return extract.Kills(src, ix, log) })
	collect(&g, r, model.CategoryDamage, &rec.Damages, func() ([]model.Damage, error) { return extract.Damages(src, ix, log) })
	collect(&g, r, model.CategoryGrenade, &rec.Grenades, func() ([]model.Grenade, error) { return extract.Grenades(src, ix, log) })
	collect(&g, r, model.CategoryBlind, &rec.PlayerBlinds, func() ([]model.PlayerBlind, error) { return extract.Blinds(src, ix, log) })
	collect(&g, r, model.CategoryBomb, &rec.BombEvents, func() ([]model.BombEvent, error) { return extract.BombEvents(src, ix, log) })
	collect(&g, r, model.CategoryEconomy, &rec.EconomyByRound, func() ([]model.EconomyRound, error) { return extract.Economy(src, log) })
	collect(&g, r, model.CategoryPurchase, &rec.Purchases, func() ([]model.Purchase, error) { return extract.Purchases(src, ix, log) })
	if opts.WeaponFires {
		collect(&g, r, model.CategoryWeaponFire, &rec.WeaponFires, func() ([]model.WeaponFire, error) { return extract.WeaponFires(src, ix, log) })
	}
	if opts.Positions {
		collect(&g, r, model.CategoryPositions, &rec.Positions, func() ([]model.PositionSnapshot, error) {
			return extract.Positions(src, opts.SampleRate, opts.MaxPositionTicks, log)
		})
	}
	_ = g.Wait() // tasks never return errors; failures are recorded by guard

	rec.EntryDuels, rec.Trades, rec.Clutches = []model.EntryDuel{}, []model.Trade{}, []model.Clutch{}
	r.guard(model.CategoryTactics, func() error {
		rec.EntryDuels = tactics.EntryDuels(rec.Kills)
		rec.Trades = tactics.Trades(rec.Kills)
		rec.Clutches = tactics.Clutches(rec.Kills, rec.Rounds)
		return nil
	})

	rec.ParsingStats = Stats(rec)
	rec.ParsingStats.TotalFailedCategories = len(r.failed)

	entry := log.WithFields(logrus.Fields{
		"rounds": len(rec.Rounds),
		"kills":  len(rec.Kills),
		"failed": len(r.failed),
	})
	if len(r.failed) > 0 {
		entry = entry.WithField("failed_categories", r.Failed())
	}
	entry.Debug("analysis complete")
	return rec, nil
}

// Stats counts the entries of each category in rec.
func Stats(rec *model.Record) model.ParsingStats {
	return model.ParsingStats{
		TotalRounds:            len(rec.Rounds),
		TotalKills:             len(rec.Kills),
		TotalDamages:           len(rec.Damages),
		TotalGrenades:          len(rec.Grenades),
		TotalBlinds:            len(rec.PlayerBlinds),
		TotalBombEvents:        len(rec.BombEvents),
		TotalWeaponFires:       len(rec.WeaponFires),
		TotalPositionSnapshots: len(rec.Positions),
		TotalPurchases:         len(rec.Purchases),
	}
}

// runner isolates category failures.
type runner struct {
	log    logrus.FieldLogger
	mu     sync.Mutex
	failed []model.Category
}

// guard runs fn, converting a returned error or a panic into a logged
// category failure. It reports whether fn succeeded.
func (r *runner) guard(cat model.Category, fn func() error) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			r.fail(cat, fmt.Errorf("panic: %v", p))
			ok = false
		}
	}()
	if err := fn(); err != nil {
		r.fail(cat, err)
		return false
	}
	return true
}

func (r *runner) fail(cat model.Category, err error) {
	r.log.WithFields(logrus.Fields{"category": cat, "error": err}).Warn("category extraction failed")
	r.mu.Lock()
	r.failed = append(r.failed, cat)
	r.mu.Unlock()
}

// Failed returns the failed categories in name order.
func (r *runner) Failed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.failed))
	for i, c := range r.failed {
		out[i] = string(c)
	}
	sort.Strings(out)
	return out
}

// collect schedules one extractor on g and stores its result in dst. dst is
// always set to a non-nil slice, empty when the extractor failed.
func collect[T any](g *errgroup.Group, r *runner, cat model.Category, dst *[]T, fn func() ([]T, error)) {
	g.Go(func() error {
		var out []T
		ok := r.guard(cat, func() error {
			var err error
			out, err = fn()
			return err
		})
		if !ok || out == nil {
			out = []T{}
		}
		*dst = out
		return nil
	})
}
