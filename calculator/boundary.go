package calculator

import (
	"fmt"

	"thermo/model"
)

// Boundary-condition store
// 1. every field accepts one value (broadcast) or 17 values (elementwise)
// 2. fields are sticky: once set they persist across simulate calls until the
//    next assignment; setting one field never resets another
// 3. the operative-temperature shortcut To is valid only while Ta == Tr;
//    while it is engaged, Ta and Tr can only move through the paired setter

// Input range limits. Out-of-range input is an error, never clamped.
const (
	minTemp = -40.0
	maxTemp = 60.0
	maxVa   = 20.0
	maxIcl  = 10.0
	minPAR  = 1.0
	maxPAR  = 10.0
)

type conditions struct {
	ta  [model.NumSegments]float64 // air temperature [degC]
	tr  [model.NumSegments]float64 // mean radiant temperature [degC]
	va  [model.NumSegments]float64 // air velocity [m/s]
	rh  [model.NumSegments]float64 // relative humidity [%]
	icl [model.NumSegments]float64 // clothing insulation [clo]

	par     float64 // physical activity ratio [-]
	posture model.Posture

	// toActive marks that the last thermal assignment came through the
	// operative shortcut, keeping ta and tr locked together.
	toActive bool
}

// newConditions returns the documented construction baseline.
func newConditions() *conditions {
	c := &conditions{par: 1.2, posture: model.Standing}
	fill(&c.ta, 28.8)
	fill(&c.tr, 28.8)
	fill(&c.va, 0.1)
	fill(&c.rh, 50)
	return c
}

func fill(dst *[model.NumSegments]float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}

// spread expands a scalar or a 17-element list into a segment vector.
func spread(field string, values []float64) ([model.NumSegments]float64, error) {
	var out [model.NumSegments]float64
	switch len(values) {
	case 1:
		fill(&out, values[0])
	case model.NumSegments:
		copy(out[:], values)
	default:
		return out, fmt.Errorf("%w: %s wants 1 or %d values, got %d",
			model.ErrInvalidBoundaryCondition, field, model.NumSegments, len(values))
	}
	return out, nil
}

func checkRange(field string, v [model.NumSegments]float64, lo, hi float64) error {
	for i, x := range v {
		if x < lo || x > hi {
			return fmt.Errorf("%w: %s[%s]=%v outside [%v, %v]",
				model.ErrInvalidBoundaryCondition, field, model.SegmentNames[i], x, lo, hi)
		}
	}
	return nil
}

func (c *conditions) setTa(values ...float64) error {
	v, err := spread("Ta", values)
	if err != nil {
		return err
	}
	if err := checkRange("Ta", v, minTemp, maxTemp); err != nil {
		return err
	}
	if c.toActive {
		return fmt.Errorf("%w: operative temperature is engaged; set Ta and Tr together",
			model.ErrInvalidBoundaryCondition)
	}
	c.ta = v
	return nil
}

func (c *conditions) setTr(values ...float64) error {
	v, err := spread("Tr", values)
	if err != nil {
		return err
	}
	if err := checkRange("Tr", v, minTemp, maxTemp); err != nil {
		return err
	}
	if c.toActive {
		return fmt.Errorf("%w: operative temperature is engaged; set Ta and Tr together",
			model.ErrInvalidBoundaryCondition)
	}
	c.tr = v
	return nil
}

// setTaTr assigns air and radiant temperature in one call and releases the
// operative shortcut.
func (c *conditions) setTaTr(ta, tr []float64) error {
	va, err := spread("Ta", ta)
	if err != nil {
		return err
	}
	vr, err := spread("Tr", tr)
	if err != nil {
		return err
	}
	if err := checkRange("Ta", va, minTemp, maxTemp); err != nil {
		return err
	}
	if err := checkRange("Tr", vr, minTemp, maxTemp); err != nil {
		return err
	}
	c.ta = va
	c.tr = vr
	c.toActive = false
	return nil
}

// setTo assigns the combined operative temperature. Valid only while Ta and
// Tr agree elementwise; both follow To afterwards.
func (c *conditions) setTo(values ...float64) error {
	v, err := spread("To", values)
	if err != nil {
		return err
	}
	if err := checkRange("To", v, minTemp, maxTemp); err != nil {
		return err
	}
	if !c.toActive {
		for i := range c.ta {
			if c.ta[i] != c.tr[i] {
				return fmt.Errorf("%w: To requires Ta == Tr (differ at %s)",
					model.ErrInvalidBoundaryCondition, model.SegmentNames[i])
			}
		}
	}
	c.ta = v
	c.tr = v
	c.toActive = true
	return nil
}

func (c *conditions) setVa(values ...float64) error {
	v, err := spread("Va", values)
	if err != nil {
		return err
	}
	if err := checkRange("Va", v, 0, maxVa); err != nil {
		return err
	}
	c.va = v
	return nil
}

func (c *conditions) setRH(values ...float64) error {
	v, err := spread("RH", values)
	if err != nil {
		return err
	}
	if err := checkRange("RH", v, 0, 100); err != nil {
		return err
	}
	c.rh = v
	return nil
}

func (c *conditions) setIcl(values ...float64) error {
	v, err := spread("Icl", values)
	if err != nil {
		return err
	}
	if err := checkRange("Icl", v, 0, maxIcl); err != nil {
		return err
	}
	c.icl = v
	return nil
}

func (c *conditions) setPAR(par float64) error {
	if par < minPAR || par > maxPAR {
		return fmt.Errorf("%w: PAR=%v outside [%v, %v]",
			model.ErrInvalidBoundaryCondition, par, minPAR, maxPAR)
	}
	c.par = par
	return nil
}

func (c *conditions) setPosture(p model.Posture) error {
	switch p {
	case model.Standing, model.Sitting, model.Lying:
		c.posture = p
		return nil
	}
	return fmt.Errorf("%w: unknown posture %d", model.ErrInvalidBoundaryCondition, int(p))
}
