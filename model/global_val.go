package model

// Segment layout
// 1. 17 anatomical segments, fixed order; list inputs follow this order
// 2. paired limb segments are tracked independently (left/right can see
//    different air speed, clothing and radiation)
// 3. 85 temperature nodes in total: 17 core + 17 skin + 17 artery + 17 vein
//    + 12 superficial vein (limbs) + muscle and fat at Head and Pelvis
//    + 1 central blood node

const (
	Head = iota
	Neck
	Chest
	Back
	Pelvis
	LShoulder
	LArm
	LHand
	RShoulder
	RArm
	RHand
	LThigh
	LLeg
	LFoot
	RThigh
	RLeg
	RFoot

	NumSegments = 17
)

const (
	// NumNodes is the full state-vector length.
	NumNodes = 85

	// NumSuperficial counts the limb segments carrying a superficial vein node.
	NumSuperficial = 12

	// NumMuscleFat counts the segments carrying explicit muscle and fat nodes.
	NumMuscleFat = 2
)

// SegmentNames is indexed by the segment constants above.
var SegmentNames = [NumSegments]string{
	"Head", "Neck", "Chest", "Back", "Pelvis",
	"LShoulder", "LArm", "LHand",
	"RShoulder", "RArm", "RHand",
	"LThigh", "LLeg", "LFoot",
	"RThigh", "RLeg", "RFoot",
}
