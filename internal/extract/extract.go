// Package extract turns decoder event tables into enriched, round-attributed
// events. There is one function per event category; each reads its own
// tables, shares nothing mutable with the others, and reports a table read
// failure as an error so the caller can isolate it.
package extract

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
)

// Horizontal speed thresholds for weapon fires, in units per second.
const (
	MovingSpeed        = 10.0
	CounterStrafeSpeed = 34.0
)

// MaxFireJoinTicks caps the distinct weapon-fire ticks joined at full
// resolution. Above it only every second tick is requested.
const MaxFireJoinTicks = 10000

// table reads one event table. A table with no occurrences yields no rows and
// no error.
func table(src replay.Source, name string) ([]replay.Row, error) {
	rows, err := src.Events(name)
	if errors.Is(err, replay.ErrNoTable) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("events %s: %w", name, err)
	}
	return rows, nil
}

func skipRow(log logrus.FieldLogger, cat model.Category, i int, reason string) {
	log.WithFields(logrus.Fields{"category": cat, "row": i}).Debugf("skipping row: %s", reason)
}

// distinctTicks returns the distinct ticks of rows in first-seen order. The
// result is never nil, so it never requests a full-replay scan.
func distinctTicks(rows []replay.Row) []int {
	seen := make(map[int]struct{}, len(rows))
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		t, ok := r.Tick()
		if !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// vecAt reads a lower-case x/y/z position triple from an event row.
func vecAt(r replay.Row) model.Vec3 {
	return model.Vec3{
		X: r.Float(replay.ColX, 0),
		Y: r.Float(replay.ColY, 0),
		Z: r.Float(replay.ColZ, 0),
	}
}
