package replay

import (
	"errors"
	"math"
	"testing"
)

func TestEventsMissingTable(t *testing.T) {
	src := NewTables()
	if _, err := src.Events(EventPlayerDeath); !errors.Is(err, ErrNoTable) {
		t.Errorf("err = %v, want ErrNoTable", err)
	}
	src.Add(EventPlayerDeath)
	if _, err := src.Events(EventPlayerDeath); !errors.Is(err, ErrNoTable) {
		t.Errorf("empty table: err = %v, want ErrNoTable", err)
	}
}

func TestEventsFailure(t *testing.T) {
	src := NewTables()
	boom := errors.New("boom")
	src.Add(EventPlayerHurt, Row{"tick": 1})
	src.Failures[EventPlayerHurt] = boom
	_, err := src.Events(EventPlayerHurt)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestSnapshotsFilter(t *testing.T) {
	src := NewTables()
	src.SnapshotRows = []Row{{"tick": 1}, {"tick": 2}, {"tick": "x"}, {"tick": 3}}
	rows, err := src.Snapshots(nil, []int{1, 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
	all, _ := src.Snapshots(nil, nil)
	if len(all) != 4 {
		t.Errorf("nil ticks returned %d rows, want 4", len(all))
	}
}

func TestRowTick(t *testing.T) {
	cases := []struct {
		row  Row
		want int
		ok   bool
	}{
		{Row{"tick": 10}, 10, true},
		{Row{"tick": 10.9}, 10, true},
		{Row{"tick": "42"}, 42, true},
		{Row{"tick": 0}, 0, true},
		{Row{"tick": nil}, 0, false},
		{Row{"tick": math.NaN()}, 0, false},
		{Row{"tick": "abc"}, 0, false},
		{Row{}, 0, false},
	}
	for _, tc := range cases {
		got, ok := tc.row.Tick()
		if got != tc.want || ok != tc.ok {
			t.Errorf("Tick(%v) = %d,%v want %d,%v", tc.row, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRowID(t *testing.T) {
	r := Row{"a": "76561198000000001", "b": "0", "c": "", "d": nil}
	if id, ok := r.ID("a"); !ok || id != "76561198000000001" {
		t.Errorf("ID(a) = %q,%v", id, ok)
	}
	for _, col := range []string{"b", "c", "d", "missing"} {
		if _, ok := r.ID(col); ok {
			t.Errorf("ID(%s) should be absent", col)
		}
		if r.IDOrEmpty(col) != "" {
			t.Errorf("IDOrEmpty(%s) should be empty", col)
		}
	}
}
