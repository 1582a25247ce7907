package series

import "thermo/model"

// ringStore keeps the newest rows in a fixed-capacity ring. Once full, each
// append evicts the oldest row.
type ringStore struct {
	rows  []model.ResultRow
	head  int // index of the oldest row
	count int
}

// NewRing returns a bounded store holding at most capacity rows.
func NewRing(capacity int) Store {
	if capacity < 1 {
		capacity = 1
	}
	return &ringStore{rows: make([]model.ResultRow, capacity)}
}

func (s *ringStore) Len() int {
	return s.count
}

func (s *ringStore) Append(r model.ResultRow) {
	if s.count < len(s.rows) {
		s.rows[(s.head+s.count)%len(s.rows)] = r
		s.count++
		return
	}
	s.rows[s.head] = r
	s.head = (s.head + 1) % len(s.rows)
}

func (s *ringStore) At(i int) model.ResultRow {
	return s.rows[(s.head+i)%len(s.rows)]
}

func (s *ringStore) Latest() (model.ResultRow, bool) {
	if s.count == 0 {
		return model.ResultRow{}, false
	}
	return s.At(s.count - 1), true
}

func (s *ringStore) Traverse(f func(i int, r model.ResultRow)) {
	for i := 0; i < s.count; i++ {
		f(i, s.At(i))
	}
}

func (s *ringStore) Window(n int) []model.ResultRow {
	if n > s.count {
		n = s.count
	}
	out := make([]model.ResultRow, n)
	for i := 0; i < n; i++ {
		out[i] = s.At(s.count - n + i)
	}
	return out
}
