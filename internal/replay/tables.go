package replay

// Tables is an in-memory Source. Snapshot rows are filtered by tick and
// returned with all of their columns; unrequested properties are ignored by
// callers. A table name present in Failures makes Events return that error.
type Tables struct {
	EventRows    map[string][]Row
	SnapshotRows []Row
	Head         Header
	Vars         map[string]string
	Failures     map[string]error

	// SnapshotErr, when set, is returned by every Snapshots call.
	SnapshotErr error
}

var _ Source = (*Tables)(nil)

// NewTables returns an empty in-memory source.
func NewTables() *Tables {
	return &Tables{
		EventRows: make(map[string][]Row),
		Vars:      make(map[string]string),
		Failures:  make(map[string]error),
	}
}

// Add appends rows to an event table.
func (t *Tables) Add(name string, rows ...Row) {
	t.EventRows[name] = append(t.EventRows[name], rows...)
}

func (t *Tables) Events(name string) ([]Row, error) {
	if err, ok := t.Failures[name]; ok {
		return nil, err
	}
	rows, ok := t.EventRows[name]
	if !ok || len(rows) == 0 {
		return nil, ErrNoTable
	}
	return rows, nil
}

func (t *Tables) Snapshots(props []string, ticks []int) ([]Row, error) {
	if t.SnapshotErr != nil {
		return nil, t.SnapshotErr
	}
	if ticks == nil {
		return t.SnapshotRows, nil
	}
	want := make(map[int]struct{}, len(ticks))
	for _, tk := range ticks {
		want[tk] = struct{}{}
	}
	var out []Row
	for _, r := range t.SnapshotRows {
		tk, ok := r.Tick()
		if !ok {
			continue
		}
		if _, ok := want[tk]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *Tables) Header() (Header, error) { return t.Head, nil }

func (t *Tables) ConVars() (map[string]string, error) { return t.Vars, nil }
