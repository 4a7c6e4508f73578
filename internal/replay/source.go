// Package replay defines the contract between the analysis core and a replay
// decoder: event tables, tick-filtered state snapshots, the demo header, and
// server configuration variables.
package replay

import (
	"errors"

	"github.com/pable/cs-replay-analyzer/internal/coerce"
)

// ErrNoTable is returned by Source.Events when a category has no occurrences.
var ErrNoTable = errors.New("no such event table")

// Row is one loosely-typed table row as produced by a decoder.
type Row map[string]any

// Source is implemented by replay decoders.
type Source interface {
	// Events returns the rows of one game event table, in tick order.
	Events(name string) ([]Row, error)
	// Snapshots returns one row per (tick, entity) holding the requested
	// properties plus ColTick and PropSteamID. A nil ticks slice requests
	// every tick of the replay.
	Snapshots(props []string, ticks []int) ([]Row, error)
	// Header returns the demo header.
	Header() (Header, error)
	// ConVars returns server configuration variables seen in the replay.
	ConVars() (map[string]string, error)
}

// Header carries the replay-level metadata the decoder exposes.
type Header struct {
	MapName      string
	PlaybackTime float64 // seconds
	TickRate     float64
	TotalTicks   int
	ServerName   string
	DemoVersion  string
}

// Has reports whether the column is present and non-nil.
func (r Row) Has(col string) bool {
	v, ok := r[col]
	return ok && v != nil
}

func (r Row) Int(col string, def int) int         { return coerce.Int(r[col], def) }
func (r Row) Float(col string, def float64) float64 { return coerce.Float(r[col], def) }
func (r Row) String(col string) string            { return coerce.String(r[col], "") }
func (r Row) Bool(col string, def bool) bool      { return coerce.Bool(r[col], def) }

// ID returns the entity identifier stored in col.
func (r Row) ID(col string) (string, bool) { return coerce.ID(r[col]) }

// IDOrEmpty returns the identifier stored in col, or "" when absent.
func (r Row) IDOrEmpty(col string) string {
	id, _ := r.ID(col)
	return id
}

// Tick returns the row's tick. A missing or non-numeric tick reports ok == false.
func (r Row) Tick() (tick int, ok bool) {
	if !r.Has(ColTick) {
		return 0, false
	}
	const bad = -1 << 31
	tick = coerce.Int(r[ColTick], bad)
	if tick == bad {
		return 0, false
	}
	return tick, true
}
