package calculator

import (
	"gonum.org/v1/gonum/floats"

	"thermo/body"
	"thermo/model"
)

// Blood flow distribution
// 1. basal per-tissue flows scaled by the control signals: skin by
//    vasomotion, muscle beds by exercise and shivering load
// 2. conservation: the segment flows are renormalised proportionally so
//    their sum equals cardiac output (cardiac index x BSA); proportional
//    scaling is the tie-break under competing vasodilation demands
// 3. venous flow mirrors arterial; limb superficial veins carry a fixed
//    fraction of the local skin flow (countercurrent approximation)

const (
	// rhoCBlood converts volumetric blood flow to a heat conductance:
	// G [W/K] = rhoCBlood x BF [L/h].
	rhoCBlood = 1.067

	// flowPerWatt adds muscle perfusion per watt of exercise or shivering
	// heat [L/h per W].
	flowPerWatt = 0.86

	// sfveinFraction of limb skin flow returns through the superficial vein.
	sfveinFraction = 0.1
)

// Basal core-bed flows [L/h], segment order. Muscle perfusion is folded into
// the core bed except at Head and Pelvis, which carry explicit muscle nodes.
var basalCoreFlow = [model.NumSegments]float64{
	45.0, 2.0, 77.0, 76.0, 95.0,
	1.5, 1.0, 0.3,
	1.5, 1.0, 0.3,
	1.3, 0.8, 0.3,
	1.3, 0.8, 0.3,
}

// Basal skin flows [L/h], segment order.
var basalSkinFlow = [model.NumSegments]float64{
	1.6, 0.4, 2.3, 2.1, 2.8,
	1.2, 0.8, 0.9,
	1.2, 0.8, 0.9,
	1.9, 1.3, 0.8,
	1.9, 1.3, 0.8,
}

// Basal muscle and fat flows [L/h] for the segments with explicit nodes
// (Head, Pelvis).
var (
	basalMuscleFlow = [model.NumMuscleFat]float64{0.9, 7.0}
	basalFatFlow    = [model.NumMuscleFat]float64{0.2, 0.7}
)

// flows holds the per-step arterial allocation [L/h]. Recomputed each step.
type flows struct {
	core   [model.NumSegments]float64
	muscle [model.NumSegments]float64 // nonzero only at Head, Pelvis
	fat    [model.NumSegments]float64 // nonzero only at Head, Pelvis
	skin   [model.NumSegments]float64
	sfvein [model.NumSegments]float64 // nonzero only on limbs

	segment [model.NumSegments]float64 // total arterial supply per segment
	total   float64                    // == cardiac output [L/h]
}

// computeFlows converts control signals into per-segment flows and enforces
// the cardiac-output constraint.
func computeFlows(sig *signals, b *body.Body, par float64, bmr float64) flows {
	var f flows
	work := (par - 1) * bmr // exercise heat [W]

	for i := 0; i < model.NumSegments; i++ {
		extra := flowPerWatt * (work*shivWeight[i] + sig.shivLocal[i])
		f.core[i] = basalCoreFlow[i]
		f.skin[i] = basalSkinFlow[i] * sig.vaso[i]
		if mf := muscleFatIndex(i); mf >= 0 {
			f.muscle[i] = basalMuscleFlow[mf] + extra
			f.fat[i] = basalFatFlow[mf]
		} else {
			f.core[i] += extra
		}
	}

	// renormalise to cardiac output
	unconstrained := floats.Sum(f.core[:]) + floats.Sum(f.muscle[:]) +
		floats.Sum(f.fat[:]) + floats.Sum(f.skin[:])
	target := b.CO * 60 // [L/min] -> [L/h]
	scale := target / unconstrained
	for i := 0; i < model.NumSegments; i++ {
		f.core[i] *= scale
		f.muscle[i] *= scale
		f.fat[i] *= scale
		f.skin[i] *= scale
		f.segment[i] = f.core[i] + f.muscle[i] + f.fat[i] + f.skin[i]
		if hasSuperficialVein(i) {
			f.sfvein[i] = sfveinFraction * f.skin[i]
		}
	}
	f.total = floats.Sum(f.segment[:])
	return f
}

// muscleFatIndex maps a segment to its slot in the muscle/fat tables, -1 when
// the segment has no explicit muscle/fat nodes.
func muscleFatIndex(seg int) int {
	switch seg {
	case model.Head:
		return 0
	case model.Pelvis:
		return 1
	}
	return -1
}
