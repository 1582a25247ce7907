package body

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"thermo/model"
)

// Body build + anthropometric tables
// 1. per-segment surface area = whole-body BSA x fixed proportion table
// 2. per-segment mass = body weight x fixed proportion table
// 3. whole-body BMR from the selected equation variant, W
// 4. cardiac output = cardiac index x whole-body BSA

// Profile is the body build under simulation. Immutable after the model is
// constructed.
type Profile struct {
	Height float64 // [m]
	Weight float64 // [kg]
	Fat    float64 // fat percentage [%]
	Age    int     // [years]
	Sex    model.Sex
	CI     float64 // cardiac index [L/min/m2]

	BMREquation string
	BSAEquation string
}

// DefaultProfile mirrors the documented construction defaults.
func DefaultProfile() Profile {
	return Profile{
		Height:      1.72,
		Weight:      74.43,
		Fat:         15,
		Age:         20,
		Sex:         model.Male,
		CI:          2.6432,
		BMREquation: EquationHarrisBenedict,
		BSAEquation: EquationDuBois,
	}
}

// Body holds the resolved scalars and per-segment tables. All values are
// computed once at construction.
type Body struct {
	Profile Profile

	BSA      [model.NumSegments]float64 // [m2], sums to BSATotal
	BSATotal float64                    // [m2]
	Mass     [model.NumSegments]float64 // [kg]
	BMR      float64                    // [W]
	CO       float64                    // basal cardiac output [L/min]
}

// Resolve validates the profile and computes the derived scalars. An
// unsupported equation variant or sex combination is rejected, never silently
// defaulted.
func Resolve(p Profile) (*Body, error) {
	if p.Height <= 0 || p.Weight <= 0 {
		return nil, fmt.Errorf("%w: height and weight must be positive", model.ErrConfiguration)
	}
	if p.Fat < 0 || p.Fat > 70 {
		return nil, fmt.Errorf("%w: fat percentage %v out of range", model.ErrConfiguration, p.Fat)
	}
	if p.Age < 0 {
		return nil, fmt.Errorf("%w: negative age", model.ErrConfiguration)
	}
	if p.CI <= 0 {
		return nil, fmt.Errorf("%w: cardiac index must be positive", model.ErrConfiguration)
	}

	bsa, err := bodySurfaceArea(p)
	if err != nil {
		return nil, err
	}
	bmr, err := basalMetabolicRate(p)
	if err != nil {
		return nil, err
	}

	b := &Body{
		Profile:  p,
		BSATotal: bsa,
		BMR:      bmr,
		CO:       p.CI * bsa,
	}
	for i := 0; i < model.NumSegments; i++ {
		b.BSA[i] = bsa * bsaFraction[i]
		b.Mass[i] = p.Weight * weightFraction[i]
	}

	log.WithFields(log.Fields{
		"height": p.Height,
		"weight": p.Weight,
		"fat":    p.Fat,
		"age":    p.Age,
		"sex":    p.Sex.String(),
		"bsa":    bsa,
		"bmr":    bmr,
		"co":     b.CO,
	}).Info("body resolved")
	return b, nil
}
