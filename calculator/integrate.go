package calculator

import (
	"fmt"
	"math"

	"thermo/body"
	"thermo/model"
)

// State integration
// 1. explicit Euler over the 85-node vector with automatic sub-stepping:
//    the stable sub-step follows from min(C_i / G_i) with a 0.5 safety
//    factor; a call needing more substeps than the configured cap is refused
// 2. node balance: metabolic heat + blood advection + inter-layer conduction
//    - boundary dry/evaporative flux at the skin
// 3. advection is upwind and pairwise: a flow from A to B heats B by
//    G x (Ta - Tb); the aggregate loop CB -> artery -> tissue -> vein -> CB
//    conserves energy in the steady state
// 4. every temperature must stay inside 0..50 degC; a violation is a
//    numerical-stability failure, not a physiological state

const (
	eulerSafety = 0.5

	// temperature sanity band [degC]
	tempFloor = 0.0
	tempCeil  = 50.0
)

// Specific heats [J/kgK].
const (
	cpBlood  = 3850.0
	cpMuscle = 3768.0
	cpFat    = 2300.0
	cpSkin   = 3680.0
	cpLean   = 3600.0
)

// Blood pool partition of body mass.
const (
	bloodMassShare   = 0.054 // of body weight
	centralBloodPart = 0.48  // of blood mass held centrally
	arteryPart       = 0.40  // of segment blood
)

// Tissue mass split per segment. Segments without explicit muscle/fat nodes
// fold everything but skin into the core.
const skinMassShare = 0.05

var muscleMassShare = [model.NumMuscleFat]float64{0.20, 0.38} // Head, Pelvis
var fatMassShare = [model.NumMuscleFat]float64{0.15, 0.17}    // Head, Pelvis

// Inter-layer conduction coefficients [W/m2K], multiplied by segment area.
var condCoreSkin = [model.NumSegments]float64{
	0, 6.0, 5.5, 5.5, 0, // Head and Pelvis use the ladder below
	7.0, 7.0, 8.0,
	7.0, 7.0, 8.0,
	6.5, 7.0, 8.0,
	6.5, 7.0, 8.0,
}

const (
	condCoreMuscle = 16.0 // [W/m2K]
	condMuscleFat  = 20.0
	condFatSkin    = 16.0
)

// Countercurrent artery-vein conductance on limbs [W/K].
const condArteryVein = 0.3

// Basal metabolism distribution over core beds. Normalised at init.
var metWeight = [model.NumSegments]float64{
	0.170, 0.010, 0.220, 0.180, 0.250,
	0.005, 0.004, 0.002,
	0.005, 0.004, 0.002,
	0.040, 0.020, 0.005,
	0.040, 0.020, 0.005,
}

// Share of basal metabolism released in the skin.
const skinMetShare = 0.05

func init() {
	normalizeWeights(&metWeight)
}

// edge is a fixed conductive link between two nodes.
type edge struct {
	a, b int
	g    float64 // [W/K]
}

// integrator owns the node capacities and the fixed conduction topology.
// It is the only component that mutates the state vector.
type integrator struct {
	heatCap [model.NumNodes]float64 // [J/K]
	edges   []edge
}

func newIntegrator(b *body.Body) *integrator {
	it := &integrator{}
	l := nodeLayout

	bloodMass := bloodMassShare * b.Profile.Weight
	it.heatCap[cbIndex] = centralBloodPart * bloodMass * cpBlood

	fatFrac := b.Profile.Fat / 100
	cpCore := (1-fatFrac)*cpLean + fatFrac*cpFat

	for i := 0; i < model.NumSegments; i++ {
		segBlood := (1 - centralBloodPart) * bloodMass * b.Mass[i] / b.Profile.Weight
		arteryMass := arteryPart * segBlood
		veinMass := segBlood - arteryMass
		if sf := l.sfveinAt(i); sf >= 0 {
			sfMass := 0.25 * veinMass
			veinMass -= sfMass
			it.heatCap[sf] = sfMass * cpBlood
		}
		it.heatCap[l.artery[i]] = arteryMass * cpBlood
		it.heatCap[l.vein[i]] = veinMass * cpBlood

		tissue := b.Mass[i] - segBlood
		skinMass := skinMassShare * tissue
		it.heatCap[l.skin[i]] = skinMass * cpSkin

		if mf := muscleFatIndex(i); mf >= 0 {
			muscleMass := muscleMassShare[mf] * tissue
			fatMass := fatMassShare[mf] * tissue
			coreMass := tissue - skinMass - muscleMass - fatMass
			it.heatCap[l.muscleAt(i)] = muscleMass * cpMuscle
			it.heatCap[l.fatAt(i)] = fatMass * cpFat
			it.heatCap[l.core[i]] = coreMass * cpCore

			it.edges = append(it.edges,
				edge{l.core[i], l.muscleAt(i), condCoreMuscle * b.BSA[i]},
				edge{l.muscleAt(i), l.fatAt(i), condMuscleFat * b.BSA[i]},
				edge{l.fatAt(i), l.skin[i], condFatSkin * b.BSA[i]},
			)
		} else {
			it.heatCap[l.core[i]] = (tissue - skinMass) * cpCore
			it.edges = append(it.edges,
				edge{l.core[i], l.skin[i], condCoreSkin[i] * b.BSA[i]},
			)
		}

		if hasSuperficialVein(i) {
			it.edges = append(it.edges,
				edge{l.artery[i], l.vein[i], condArteryVein},
			)
		}
	}
	return it
}

// initialState is the documented thermoneutral baseline: tissues at their
// setpoints, blood slightly below core.
func initialState() [model.NumNodes]float64 {
	var st [model.NumNodes]float64
	l := nodeLayout
	st[cbIndex] = setpointCB
	for i := 0; i < model.NumSegments; i++ {
		st[l.core[i]] = setpointCore[i]
		st[l.skin[i]] = setpointSkin[i]
		st[l.artery[i]] = setpointCore[i] - 0.1
		st[l.vein[i]] = setpointCore[i] - 0.3
		if sf := l.sfveinAt(i); sf >= 0 {
			st[sf] = setpointSkin[i] + 0.5
		}
		if mf := muscleFatIndex(i); mf >= 0 {
			st[l.muscleAt(i)] = setpointCore[i] - 0.3
			st[l.fatAt(i)] = (setpointCore[i] + setpointSkin[i]) / 2
		}
	}
	return st
}

// sources holds the per-step heat generation [W] per segment bed.
type sources struct {
	core   [model.NumSegments]float64
	muscle [model.NumSegments]float64 // folded into core where no node exists
	skin   [model.NumSegments]float64
}

// computeSources splits metabolism: basal over the core beds, a small share
// in the skin, exercise and shivering into the muscle beds. Respiratory heat
// loss leaves through the chest core.
func computeSources(b *body.Body, par float64, sig *signals, res *resistances) sources {
	var src sources
	work := (par - 1) * b.BMR
	for i := 0; i < model.NumSegments; i++ {
		src.core[i] = b.BMR * (1 - skinMetShare) * metWeight[i]
		src.skin[i] = b.BMR * skinMetShare * b.BSA[i] / b.BSATotal
		load := work*shivWeight[i] + sig.shivLocal[i]
		if muscleFatIndex(i) >= 0 {
			src.muscle[i] = load
		} else {
			src.core[i] += load
		}
	}
	met := b.BMR*par + sig.shiv
	src.core[model.Chest] -= respiratoryLoss(met, res.pa[model.Chest], resAirTemp(res))
	return src
}

// respiratoryLoss is the sensible plus latent heat carried out by breathing
// [W]; pa in Pa.
func respiratoryLoss(met, pa, ta float64) float64 {
	q := 0.0014*met*(34-ta) + 0.0173*met*(5.87-pa/1000)
	if q < 0 {
		return 0
	}
	return q
}

// resAirTemp approximates inhaled air temperature by the chest-level
// operative temperature.
func resAirTemp(res *resistances) float64 {
	return res.to[model.Chest]
}

// step advances the state by dtime seconds, sub-stepping as needed. The
// flows, signals and resistances are held fixed for the whole step
// (conditions are evaluated once per step, not interpolated).
func (it *integrator) step(st []float64, b *body.Body, f *flows, sig *signals,
	res *resistances, src *sources, dtime float64, maxSubsteps int) error {

	gSum := it.incidentConductance(b, f, res)
	tauMin := math.Inf(1)
	for i := 0; i < model.NumNodes; i++ {
		if gSum[i] > 0 {
			if tau := it.heatCap[i] / gSum[i]; tau < tauMin {
				tauMin = tau
			}
		}
	}
	dtMax := eulerSafety * tauMin
	substeps := int(math.Ceil(dtime / dtMax))
	if substeps < 1 {
		substeps = 1
	}
	if substeps > maxSubsteps {
		return fmt.Errorf("%w: dtime=%.0fs needs %d substeps (cap %d)",
			model.ErrUnstableStepSize, dtime, substeps, maxSubsteps)
	}

	dt := dtime / float64(substeps)
	var dq [model.NumNodes]float64
	for s := 0; s < substeps; s++ {
		it.heatBalance(st, b, f, sig, res, src, &dq)
		for i := 0; i < model.NumNodes; i++ {
			st[i] += dt * dq[i] / it.heatCap[i]
		}
	}
	for i := 0; i < model.NumNodes; i++ {
		if st[i] < tempFloor || st[i] > tempCeil || math.IsNaN(st[i]) {
			return fmt.Errorf("%w: node %d at %.2f degC after step",
				model.ErrUnstableStepSize, i, st[i])
		}
	}
	return nil
}

// heatBalance fills dq with the net heat flow into every node [W].
func (it *integrator) heatBalance(st []float64, b *body.Body, f *flows,
	sig *signals, res *resistances, src *sources, dq *[model.NumNodes]float64) {

	l := nodeLayout
	for i := range dq {
		dq[i] = 0
	}

	for i := 0; i < model.NumSegments; i++ {
		ar, ve, cr, sk := l.artery[i], l.vein[i], l.core[i], l.skin[i]

		// central blood -> artery
		gSeg := rhoCBlood * f.segment[i]
		dq[ar] += gSeg * (st[cbIndex] - st[ar])

		// artery -> tissue beds, tissue beds -> vein
		perfuse := func(bf float64, node int) {
			g := rhoCBlood * bf
			dq[node] += g * (st[ar] - st[node])
			dq[ve] += g * (st[node] - st[ve])
		}
		perfuse(f.core[i], cr)
		if mf := muscleFatIndex(i); mf >= 0 {
			perfuse(f.muscle[i], l.muscleAt(i))
			perfuse(f.fat[i], l.fatAt(i))
		}

		skinReturn := f.skin[i] - f.sfvein[i]
		gsk := rhoCBlood * f.skin[i]
		dq[sk] += gsk * (st[ar] - st[sk])
		dq[ve] += rhoCBlood * skinReturn * (st[sk] - st[ve])

		// vein -> central blood
		dq[cbIndex] += rhoCBlood * (f.segment[i] - f.sfvein[i]) * (st[ve] - st[cbIndex])

		if sf := l.sfveinAt(i); sf >= 0 {
			gsf := rhoCBlood * f.sfvein[i]
			dq[sf] += gsf * (st[sk] - st[sf])
			dq[cbIndex] += gsf * (st[sf] - st[cbIndex])
		}

		// metabolism
		dq[cr] += src.core[i]
		dq[sk] += src.skin[i]
		if mf := muscleFatIndex(i); mf >= 0 {
			dq[l.muscleAt(i)] += src.muscle[i]
		}

		// boundary flux at the skin: dry + evaporative
		dq[sk] -= b.BSA[i]*(st[sk]-res.to[i])/res.rt[i] + sig.esk[i]
	}

	for _, e := range it.edges {
		q := e.g * (st[e.a] - st[e.b])
		dq[e.a] -= q
		dq[e.b] += q
	}
}

// incidentConductance sums every conductance touching each node, the
// denominator of the per-node stability bound.
func (it *integrator) incidentConductance(b *body.Body, f *flows, res *resistances) [model.NumNodes]float64 {
	var g [model.NumNodes]float64
	l := nodeLayout
	for i := 0; i < model.NumSegments; i++ {
		ar, ve, cr, sk := l.artery[i], l.vein[i], l.core[i], l.skin[i]
		gSeg := rhoCBlood * f.segment[i]
		g[ar] += gSeg
		g[cbIndex] += gSeg

		add := func(bf float64, node int) {
			gf := rhoCBlood * bf
			g[node] += gf
			g[ve] += gf
		}
		add(f.core[i], cr)
		if muscleFatIndex(i) >= 0 {
			add(f.muscle[i], l.muscleAt(i))
			add(f.fat[i], l.fatAt(i))
		}
		g[sk] += rhoCBlood * f.skin[i]
		g[ve] += rhoCBlood * (f.skin[i] - f.sfvein[i])
		if sf := l.sfveinAt(i); sf >= 0 {
			gsf := rhoCBlood * f.sfvein[i]
			g[sf] += gsf
			g[sk] += gsf
			g[cbIndex] += gsf
		}
		g[sk] += b.BSA[i] / res.rt[i]
	}
	for _, e := range it.edges {
		g[e.a] += e.g
		g[e.b] += e.g
	}
	return g
}
