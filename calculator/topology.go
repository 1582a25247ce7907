package calculator

import "thermo/model"

// Node layout
// 1. one central blood node at offset 0
// 2. per segment, in segment order: artery, vein, superficial vein (limbs
//    only), core, muscle (Head and Pelvis only), fat (Head and Pelvis only),
//    skin
// 3. the layout is a flat offset table so the integrator stays a plain
//    numeric kernel over one 85-element vector

type Layer int

const (
	LayerArtery Layer = iota
	LayerVein
	LayerSuperficialVein
	LayerCore
	LayerMuscle
	LayerFat
	LayerSkin

	numLayers
)

// cbIndex is the central blood node offset.
const cbIndex = 0

// layout maps (segment, layer) to a state-vector offset, -1 where the layer
// does not exist for that segment.
type layout struct {
	offset [model.NumSegments][numLayers]int

	artery [model.NumSegments]int
	vein   [model.NumSegments]int
	core   [model.NumSegments]int
	skin   [model.NumSegments]int

	sfvein [model.NumSuperficial]int // limb segments, segment order
	muscle [model.NumMuscleFat]int   // Head, Pelvis
	fat    [model.NumMuscleFat]int   // Head, Pelvis

	sfveinSeg [model.NumSuperficial]int
	muscleSeg [model.NumMuscleFat]int
}

// hasSuperficialVein reports whether the segment is a limb carrying a
// superficial vein node.
func hasSuperficialVein(seg int) bool {
	return seg >= model.LShoulder
}

// hasMuscleFat reports whether the segment carries explicit muscle and fat
// nodes.
func hasMuscleFat(seg int) bool {
	return seg == model.Head || seg == model.Pelvis
}

var nodeLayout = buildLayout()

func buildLayout() *layout {
	l := &layout{}
	next := cbIndex + 1
	sf, mf := 0, 0
	for seg := 0; seg < model.NumSegments; seg++ {
		for layer := Layer(0); layer < numLayers; layer++ {
			l.offset[seg][layer] = -1
		}
		assign := func(layer Layer) int {
			l.offset[seg][layer] = next
			next++
			return l.offset[seg][layer]
		}
		l.artery[seg] = assign(LayerArtery)
		l.vein[seg] = assign(LayerVein)
		if hasSuperficialVein(seg) {
			l.sfvein[sf] = assign(LayerSuperficialVein)
			l.sfveinSeg[sf] = seg
			sf++
		}
		l.core[seg] = assign(LayerCore)
		if hasMuscleFat(seg) {
			l.muscle[mf] = assign(LayerMuscle)
			l.fat[mf] = assign(LayerFat)
			l.muscleSeg[mf] = seg
			mf++
		}
		l.skin[seg] = assign(LayerSkin)
	}
	if next != model.NumNodes {
		panic("calculator: node layout does not cover the state vector")
	}
	return l
}

// sfveinAt returns the superficial-vein offset for a segment, -1 when absent.
func (l *layout) sfveinAt(seg int) int {
	if !hasSuperficialVein(seg) {
		return -1
	}
	return l.offset[seg][LayerSuperficialVein]
}

// muscleAt and fatAt return -1 when the segment folds muscle/fat into its
// core node.
func (l *layout) muscleAt(seg int) int {
	return l.offset[seg][LayerMuscle]
}

func (l *layout) fatAt(seg int) int {
	return l.offset[seg][LayerFat]
}
