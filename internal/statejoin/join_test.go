package statejoin

import (
	"errors"
	"math"
	"testing"

	"github.com/pable/cs-replay-analyzer/internal/model"
	"github.com/pable/cs-replay-analyzer/internal/replay"
)

func sampleSource() *replay.Tables {
	src := replay.NewTables()
	src.SnapshotRows = []replay.Row{
		{"tick": 100, "steamid": "1", "X": 10.0, "Y": 20.0, "Z": 30.0, "velocity_X": 3.0, "velocity_Y": 4.0},
		{"tick": 100, "steamid": "1", "X": 99.0, "Y": 99.0, "Z": 99.0},
		{"tick": 100, "steamid": "2", "X": math.NaN(), "Y": "bad", "Z": 5.0, "health": nil, "is_alive": false},
		{"tick": 100, "steamid": "0", "X": 1.0},
		{"tick": 200, "steamid": "1", "X": 1.0},
		{"tick": 300, "steamid": "3", "X": 7.0},
	}
	return src
}

func TestBuildScopedToTicks(t *testing.T) {
	j, err := Build(sampleSource(), []string{"X", "Y", "Z"}, []int{100, 200})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if j.Len() != 3 {
		t.Errorf("Len = %d, want 3", j.Len())
	}
	if _, ok := j.Lookup(300, "3"); ok {
		t.Error("tick 300 was not requested but is present")
	}
}

func TestFirstDuplicateWins(t *testing.T) {
	j, _ := Build(sampleSource(), nil, nil)
	s, ok := j.Lookup(100, "1")
	if !ok {
		t.Fatal("expected sample for (100, 1)")
	}
	if s.Position != (model.Vec3{X: 10, Y: 20, Z: 30}) {
		t.Errorf("Position = %+v, want first occurrence", s.Position)
	}
	if s.Velocity.HorizontalSpeed() != 5 {
		t.Errorf("speed = %v, want 5", s.Velocity.HorizontalSpeed())
	}
}

func TestFieldFailuresDegradeSingleField(t *testing.T) {
	j, _ := Build(sampleSource(), nil, nil)
	s, ok := j.Lookup(100, "2")
	if !ok {
		t.Fatal("row with bad fields was dropped")
	}
	if s.Position.X != 0 || s.Position.Y != 0 || s.Position.Z != 5 {
		t.Errorf("Position = %+v, want {0 0 5}", s.Position)
	}
	if s.Health != 100 {
		t.Errorf("Health = %d, want default 100", s.Health)
	}
	if s.Alive {
		t.Error("Alive = true, want false")
	}
}

func TestMissingLookupResolvesToZero(t *testing.T) {
	j, _ := Build(sampleSource(), nil, nil)
	s, ok := j.Lookup(100, "42")
	if ok {
		t.Error("expected miss")
	}
	if s.Position != (model.Vec3{}) {
		t.Errorf("Position = %+v, want zero", s.Position)
	}
	if p := j.Position(999, "1"); p != (model.Vec3{}) {
		t.Errorf("Position(999) = %+v, want zero", p)
	}
	var nilJoin *Join
	if _, ok := nilJoin.Lookup(1, "1"); ok {
		t.Error("nil join should miss")
	}
}

func TestAbsentEntityDropped(t *testing.T) {
	j, _ := Build(sampleSource(), nil, nil)
	if _, ok := j.Lookup(100, "0"); ok {
		t.Error("sentinel id 0 should not be indexed")
	}
}

func TestAtKeepsSourceOrder(t *testing.T) {
	j, _ := Build(sampleSource(), nil, nil)
	at := j.At(100)
	if len(at) != 2 || at[0].EntityID != "1" || at[1].EntityID != "2" {
		t.Errorf("At(100) = %+v", at)
	}
	ticks := j.Ticks()
	if len(ticks) != 3 || ticks[0] != 100 || ticks[1] != 200 || ticks[2] != 300 {
		t.Errorf("Ticks = %v", ticks)
	}
}

func TestBuildDoesNotMutateSource(t *testing.T) {
	src := sampleSource()
	before := len(src.SnapshotRows)
	_, _ = Build(src, []string{"X"}, []int{100})
	if len(src.SnapshotRows) != before {
		t.Error("source rows changed")
	}
	if src.SnapshotRows[1]["X"] != 99.0 {
		t.Error("source row mutated")
	}
}

func TestBuildPropagatesSourceError(t *testing.T) {
	src := replay.NewTables()
	src.SnapshotErr = errors.New("boom")
	if _, err := Build(src, nil, []int{1}); err == nil {
		t.Error("expected error")
	}
}

func TestWithKeyProps(t *testing.T) {
	got := withKeyProps([]string{"X"})
	if len(got) != 2 || got[1] != replay.PropSteamID {
		t.Errorf("withKeyProps = %v", got)
	}
	got = withKeyProps([]string{"steamid", "X"})
	if len(got) != 2 {
		t.Errorf("withKeyProps duplicated steamid: %v", got)
	}
}
