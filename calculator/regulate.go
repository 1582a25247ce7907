package calculator

import "thermo/model"

// Thermoregulatory feedback
// 1. error signal per segment = current temperature - segment setpoint
// 2. whole-body warm/cold signals aggregate skin errors with receptor weights
// 3. three parallel laws: vasomotion, shivering, sweating; all are
//    piecewise-continuous in the error signal so nothing jumps at the
//    thresholds, and none keeps memory beyond the current state

const (
	setpointCB = 36.9 // central blood setpoint [degC]

	// sweating
	sweatThreshold = 0.1    // whole-body warm signal onset [K]
	sweatGainCore  = 300.0  // [W/K]
	sweatGainSkin  = 150.0  // [W/K]
	wetBasal       = 0.06   // diffusion wettedness floor [-]

	// shivering
	shivThreshold = 0.5   // whole-body cold signal onset [K]
	shivGainSkin  = 75.0  // [W/K]
	shivGainCore  = 400.0 // [W/K]
	shivMaxMult   = 3.0   // cap as a multiple of BMR

	// vasomotion
	dilGainCore = 10.0 // [1/K]
	dilGainSkin = 1.0  // [1/K]
	conGainCore = 10.0 // [1/K]
	conGainSkin = 0.5  // [1/K]
	vasoFloor   = 0.05 // minimum perfusion factor, keeps resistances finite
	vasoCap     = 15.0 // maximum skin blood flow factor
)

// Core setpoints [degC], segment order.
var setpointCore = [model.NumSegments]float64{
	36.9, 36.9, 37.0, 37.0, 37.0,
	35.9, 35.8, 35.4,
	35.9, 35.8, 35.4,
	35.8, 35.6, 35.1,
	35.8, 35.6, 35.1,
}

// Skin setpoints [degC], segment order.
var setpointSkin = [model.NumSegments]float64{
	35.3, 35.6, 34.5, 34.4, 34.5,
	33.9, 34.3, 34.5,
	33.9, 34.3, 34.5,
	33.8, 33.4, 33.9,
	33.8, 33.4, 33.9,
}

// Thermoreceptor weights for the whole-body skin signal. Normalised at init.
var receptorWeight = [model.NumSegments]float64{
	0.175, 0.025, 0.175, 0.150, 0.145,
	0.023, 0.018, 0.023,
	0.023, 0.018, 0.023,
	0.050, 0.0325, 0.0275,
	0.050, 0.0325, 0.0275,
}

// Sweat-gland density weights. Normalised at init.
var sweatWeight = [model.NumSegments]float64{
	0.064, 0.017, 0.146, 0.146, 0.146,
	0.031, 0.024, 0.043,
	0.031, 0.024, 0.043,
	0.087, 0.058, 0.031,
	0.087, 0.058, 0.031,
}

// Shivering muscle-mass weights. Normalised at init.
var shivWeight = [model.NumSegments]float64{
	0.020, 0.010, 0.220, 0.220, 0.220,
	0.010, 0.006, 0.002,
	0.010, 0.006, 0.002,
	0.100, 0.026, 0.004,
	0.100, 0.026, 0.004,
}

func init() {
	normalizeWeights(&receptorWeight)
	normalizeWeights(&sweatWeight)
	normalizeWeights(&shivWeight)
}

func normalizeWeights(t *[model.NumSegments]float64) {
	var sum float64
	for _, v := range t {
		sum += v
	}
	for i := range t {
		t[i] /= sum
	}
}

// signals is recomputed every step from the current state and boundary
// conditions; nothing here persists.
type signals struct {
	wrms float64 // whole-body warm skin signal [K]
	clds float64 // whole-body cold skin signal [K]

	vaso [model.NumSegments]float64 // skin blood flow factor [-]
	wet  [model.NumSegments]float64 // skin wettedness [-], capped at 1
	esk  [model.NumSegments]float64 // evaporative heat loss [W]

	shiv      float64                    // whole-body shivering [W]
	shivLocal [model.NumSegments]float64 // shivering per segment [W]
}

// computeSignals applies the three feedback laws. state is the raw 85-node
// vector; bsa is the per-segment surface area; bmr the whole-body basal rate.
func computeSignals(state []float64, res *resistances, bsa *[model.NumSegments]float64, bmr float64) signals {
	var sig signals
	l := nodeLayout

	errCB := state[cbIndex] - setpointCB
	var errSk [model.NumSegments]float64
	for i := 0; i < model.NumSegments; i++ {
		errSk[i] = state[l.skin[i]] - setpointSkin[i]
		if errSk[i] > 0 {
			sig.wrms += receptorWeight[i] * errSk[i]
		} else {
			sig.clds -= receptorWeight[i] * errSk[i]
		}
	}

	// vasomotion: warm drives dilation, cold drives constriction, both
	// bounded so flow never vanishes and never runs away
	for i := 0; i < model.NumSegments; i++ {
		dil := dilGainCore*pos(errCB) + dilGainSkin*pos(errSk[i])
		con := conGainCore*pos(-errCB) + conGainSkin*pos(-errSk[i])
		f := (1 + dil) / (1 + con)
		if f < vasoFloor {
			f = vasoFloor
		}
		if f > vasoCap {
			f = vasoCap
		}
		sig.vaso[i] = f
	}

	// shivering: onset above the cold threshold, saturating at a multiple of
	// the basal rate
	if cold := sig.clds - shivThreshold; cold > 0 {
		shiv := shivGainSkin*cold + shivGainCore*pos(-errCB)
		if ceil := shivMaxMult * bmr; shiv > ceil {
			shiv = ceil
		}
		sig.shiv = shiv
		for i := 0; i < model.NumSegments; i++ {
			sig.shivLocal[i] = shiv * shivWeight[i]
		}
	}

	// sweating: central demand distributed by gland density; local
	// evaporation saturates when the skin is fully wet (rain ceiling), so
	// wettedness tops out at exactly 1 no matter the demand
	var demand float64
	if warm := sig.wrms - sig.clds - sweatThreshold; warm > 0 {
		demand = sweatGainCore*pos(errCB) + sweatGainSkin*warm
	}
	for i := 0; i < model.NumSegments; i++ {
		emax := (psat(state[l.skin[i]]) - res.pa[i]) / res.ret[i] * bsa[i] // [W]
		if emax <= 0 {
			// ambient vapour pressure at or above skin saturation: the skin
			// is effectively fully wet and nothing evaporates
			sig.wet[i] = 1
			sig.esk[i] = 0
			continue
		}
		ersw := demand * sweatWeight[i]
		w := wetBasal + (1-wetBasal)*ersw/emax
		if w > 1 {
			w = 1
		}
		sig.wet[i] = w
		sig.esk[i] = w * emax
	}

	return sig
}

func pos(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
