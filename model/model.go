package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Posture selects the convective/radiant coefficient tables. Body segment
// orientation changes the exposed area and the natural convection regime.
type Posture int

const (
	Standing Posture = iota
	Sitting
	Lying
)

func (p Posture) String() string {
	switch p {
	case Standing:
		return "standing"
	case Sitting:
		return "sitting"
	case Lying:
		return "lying"
	}
	return "unknown"
}

// ParsePosture maps the wire/script spelling onto the enum.
func ParsePosture(s string) (Posture, error) {
	switch s {
	case "standing":
		return Standing, nil
	case "sitting":
		return Sitting, nil
	case "lying":
		return Lying, nil
	}
	return Standing, fmt.Errorf("unknown posture %q", s)
}

type Sex int

const (
	Male Sex = iota
	Female
)

func (s Sex) String() string {
	if s == Female {
		return "female"
	}
	return "male"
}

func ParseSex(s string) (Sex, error) {
	switch s {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return Male, fmt.Errorf("unknown sex %q", s)
}

// FlexVec accepts either a single number (broadcast to all segments) or a
// 17-element list in JSON. Length validation happens at the setter, not here.
type FlexVec []float64

func (v *FlexVec) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		*v = FlexVec{scalar}
		return nil
	}
	var list []float64
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = FlexVec(list)
	return nil
}

// Msg is the frame exchanged with front-end clients.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ProfileReq carries the body build for model construction.
type ProfileReq struct {
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Fat         float64 `json:"fat"`
	Age         int     `json:"age"`
	Sex         string  `json:"sex"`
	CI          float64 `json:"ci"`
	BMREquation string  `json:"bmr_equation"`
	BSAEquation string  `json:"bsa_equation"`
}

// EnvReq carries environmental and clothing inputs. Absent fields keep their
// previous value (sticky semantics), so every field is optional.
type EnvReq struct {
	Ta      *FlexVec `json:"ta,omitempty"`
	Tr      *FlexVec `json:"tr,omitempty"`
	To      *FlexVec `json:"to,omitempty"`
	Va      *FlexVec `json:"va,omitempty"`
	RH      *FlexVec `json:"rh,omitempty"`
	Icl     *FlexVec `json:"icl,omitempty"`
	PAR     *float64 `json:"par,omitempty"`
	Posture *string  `json:"posture,omitempty"`
}

// RunReq triggers one simulate call.
type RunReq struct {
	Times int     `json:"times"`
	Dtime float64 `json:"dtime"`
}

// ResultRow is one step's snapshot. Rows are append-only and never mutated
// after being logged.
type ResultRow struct {
	Step    int     `json:"step"`
	Time    float64 `json:"time"` // cumulative simulated seconds
	Dtime   float64 `json:"dtime"`
	TskMean float64 `json:"tsk_mean"`
	WetMean float64 `json:"wet_mean"`
	Tcb     float64 `json:"tcb"`
	Met     float64 `json:"met"`  // whole-body metabolic rate [W]
	Shiv    float64 `json:"shiv"` // shivering thermogenesis [W]
	CO      float64 `json:"co"`   // cardiac output [L/min]

	Tsk [NumSegments]float64 `json:"tsk"`
	Tcr [NumSegments]float64 `json:"tcr"`
	Wet [NumSegments]float64 `json:"wet"`
}

// Header names the columns of the tabular form, in Record order.
func Header() []string {
	h := []string{"Step", "Time", "Dtime", "TskMean", "WetMean", "Tcb", "Met", "Shiv", "CO"}
	for _, n := range SegmentNames {
		h = append(h, "Tsk"+n)
	}
	for _, n := range SegmentNames {
		h = append(h, "Tcr"+n)
	}
	for _, n := range SegmentNames {
		h = append(h, "Wet"+n)
	}
	return h
}

// Record flattens the row for tabular export. The encoding itself (CSV or
// otherwise) is the caller's business.
func (r ResultRow) Record() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	rec := []string{
		strconv.Itoa(r.Step), f(r.Time), f(r.Dtime),
		f(r.TskMean), f(r.WetMean), f(r.Tcb), f(r.Met), f(r.Shiv), f(r.CO),
	}
	for _, v := range r.Tsk {
		rec = append(rec, f(v))
	}
	for _, v := range r.Tcr {
		rec = append(rec, f(v))
	}
	for _, v := range r.Wet {
		rec = append(rec, f(v))
	}
	return rec
}
