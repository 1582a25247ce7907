package series

import "thermo/model"

// logStore is the driver's result log: append-only, unbounded, rows never
// mutated after append.
type logStore struct {
	rows []model.ResultRow
}

// NewLog returns an empty append-only store.
func NewLog() Store {
	return &logStore{rows: make([]model.ResultRow, 0, 64)}
}

func (s *logStore) Len() int {
	return len(s.rows)
}

func (s *logStore) Append(r model.ResultRow) {
	s.rows = append(s.rows, r)
}

func (s *logStore) At(i int) model.ResultRow {
	return s.rows[i]
}

func (s *logStore) Latest() (model.ResultRow, bool) {
	if len(s.rows) == 0 {
		return model.ResultRow{}, false
	}
	return s.rows[len(s.rows)-1], true
}

func (s *logStore) Traverse(f func(i int, r model.ResultRow)) {
	for i, r := range s.rows {
		f(i, r)
	}
}

func (s *logStore) Window(n int) []model.ResultRow {
	if n > len(s.rows) {
		n = len(s.rows)
	}
	out := make([]model.ResultRow, n)
	copy(out, s.rows[len(s.rows)-n:])
	return out
}
