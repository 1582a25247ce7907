package body

import (
	"fmt"
	"math"

	"thermo/model"
)

// Equation variant catalog. Coefficients are literature values; the selector
// strings match the documented construction parameters.

const (
	EquationDuBois   = "dubois"
	EquationTakahira = "takahira"
	EquationFujimoto = "fujimoto"
	EquationKurazumi = "kurazumi"

	EquationHarrisBenedict         = "harris-benedict"
	EquationHarrisBenedictOriginal = "harris-benedict-original"
	EquationJapanese               = "japanese"
	EquationGanpule                = "japanese-ganpule"
)

// kcal/day to W
const kcalPerDayToWatt = 4186.0 / 86400.0

// bsaFraction maps each segment to its share of the whole-body surface area.
// Normalised at init so the per-segment areas sum to the whole-body BSA
// exactly.
var bsaFraction = [model.NumSegments]float64{
	0.110, 0.029, 0.175, 0.161, 0.221,
	0.096, 0.063, 0.050,
	0.096, 0.063, 0.050,
	0.209, 0.112, 0.056,
	0.209, 0.112, 0.056,
}

// weightFraction maps each segment to its share of body mass. Normalised at
// init.
var weightFraction = [model.NumSegments]float64{
	0.0694, 0.0269, 0.1609, 0.1307, 0.1616,
	0.0423, 0.0256, 0.0061,
	0.0423, 0.0256, 0.0061,
	0.1069, 0.0432, 0.0129,
	0.1069, 0.0432, 0.0129,
}

func init() {
	normalize(&bsaFraction)
	normalize(&weightFraction)
}

func normalize(t *[model.NumSegments]float64) {
	var sum float64
	for _, v := range t {
		sum += v
	}
	for i := range t {
		t[i] /= sum
	}
}

// bodySurfaceArea returns the whole-body BSA [m2] for the selected variant.
// Height in m, weight in kg.
func bodySurfaceArea(p Profile) (float64, error) {
	h, w := p.Height, p.Weight
	switch p.BSAEquation {
	case EquationDuBois:
		return 0.2025 * math.Pow(h, 0.725) * math.Pow(w, 0.425), nil
	case EquationTakahira:
		return 0.2042 * math.Pow(h, 0.725) * math.Pow(w, 0.425), nil
	case EquationFujimoto:
		return 0.1882 * math.Pow(h, 0.663) * math.Pow(w, 0.444), nil
	case EquationKurazumi:
		return 0.2440 * math.Pow(h, 0.693) * math.Pow(w, 0.383), nil
	}
	return 0, fmt.Errorf("%w: unknown bsa equation %q", model.ErrConfiguration, p.BSAEquation)
}

// basalMetabolicRate returns the whole-body BMR [W] for the selected variant
// and sex.
func basalMetabolicRate(p Profile) (float64, error) {
	hcm := p.Height * 100
	w := p.Weight
	age := float64(p.Age)

	var kcalDay float64
	switch p.BMREquation {
	case EquationHarrisBenedict:
		// revised coefficients
		switch p.Sex {
		case model.Male:
			kcalDay = 88.362 + 13.397*w + 4.799*hcm - 5.677*age
		case model.Female:
			kcalDay = 447.593 + 9.247*w + 3.098*hcm - 4.330*age
		default:
			return 0, fmt.Errorf("%w: bmr equation %q has no coefficients for sex %v",
				model.ErrConfiguration, p.BMREquation, p.Sex)
		}
	case EquationHarrisBenedictOriginal:
		switch p.Sex {
		case model.Male:
			kcalDay = 66.4730 + 13.7516*w + 5.0033*hcm - 6.7550*age
		case model.Female:
			kcalDay = 655.0955 + 9.5634*w + 1.8496*hcm - 4.6756*age
		default:
			return 0, fmt.Errorf("%w: bmr equation %q has no coefficients for sex %v",
				model.ErrConfiguration, p.BMREquation, p.Sex)
		}
	case EquationJapanese, EquationGanpule:
		// Ganpule et al., fitted on a Japanese population; MJ/day form.
		var sexTerm float64
		switch p.Sex {
		case model.Male:
			sexTerm = 0.4235
		case model.Female:
			sexTerm = 0.9708
		default:
			return 0, fmt.Errorf("%w: bmr equation %q has no coefficients for sex %v",
				model.ErrConfiguration, p.BMREquation, p.Sex)
		}
		mjDay := 0.0481*w + 0.0234*hcm - 0.0138*age - sexTerm
		if mjDay <= 0 {
			return 0, fmt.Errorf("%w: bmr equation %q undefined for this build",
				model.ErrConfiguration, p.BMREquation)
		}
		kcalDay = mjDay * 1000 / 4.186
	default:
		return 0, fmt.Errorf("%w: unknown bmr equation %q", model.ErrConfiguration, p.BMREquation)
	}

	if kcalDay <= 0 {
		return 0, fmt.Errorf("%w: bmr equation %q undefined for this build",
			model.ErrConfiguration, p.BMREquation)
	}
	return kcalDay * kcalPerDayToWatt, nil
}
