// Result-row storage for the simulation driver and the push pipeline.
// The append-only store backs the driver's result log; the ring store keeps
// the most recent rows for streaming to newly attached clients. Both are
// array-backed: rows are read far more often than they are written, so
// locality matters more than pointer flexibility.

package series

import "thermo/model"

type Store interface {
	// Len returns the number of stored rows.
	Len() int

	// Append adds one row at the end.
	Append(r model.ResultRow)

	// At returns the i-th stored row, oldest first.
	At(i int) model.ResultRow

	// Latest returns the most recent row, if any.
	Latest() (model.ResultRow, bool)

	// Traverse visits rows oldest first.
	Traverse(f func(i int, r model.ResultRow))

	// Window copies out the most recent n rows (fewer when not enough stored).
	Window(n int) []model.ResultRow
}
