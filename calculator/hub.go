package calculator

import "thermo/model"

// CalcHub decouples the stepping loop from result consumers: every landed
// step offers its row on a buffered channel, and a slow or absent consumer
// never blocks the engine.
type CalcHub struct {
	Stop chan struct{}
	Rows chan model.ResultRow
}

func NewCalcHub() *CalcHub {
	return &CalcHub{
		Rows: make(chan model.ResultRow, 64),
	}
}

// PushRow offers a row to the consumer; dropped when the buffer is full.
func (ch *CalcHub) PushRow(r model.ResultRow) {
	select {
	case ch.Rows <- r:
	default:
	}
}

func (ch *CalcHub) StartSignal() {
	ch.Stop = make(chan struct{})
}

func (ch *CalcHub) StopSignal() {
	close(ch.Stop)
}
