package sensor

import "github.com/petgprojects/ElementalWarrior-sub000/vmath"

// JointName identifies a hand-skeleton joint by role rather than by any
// vendor skeleton layout, so classifier logic runs against synthetic data.
type JointName uint8

const (
	JointWrist JointName = iota
	JointThumbTip
	JointIndexKnuckle
	JointIndexTip
	JointMiddleKnuckle
	JointMiddleTip
	JointRingKnuckle
	JointRingTip
	JointLittleKnuckle
	JointLittleTip

	jointCount
)

// JointCount is the number of named joints carried per hand.
const JointCount = int(jointCount)

// FingertipJoints lists the four non-thumb fingertips used by spread and
// curl measures, in a stable order.
var FingertipJoints = [4]JointName{JointIndexTip, JointMiddleTip, JointRingTip, JointLittleTip}

// KnuckleJoints lists the knuckle paired with each entry of FingertipJoints.
var KnuckleJoints = [4]JointName{JointIndexKnuckle, JointMiddleKnuckle, JointRingKnuckle, JointLittleKnuckle}

func (n JointName) String() string {
	switch n {
	case JointWrist:
		return "wrist"
	case JointThumbTip:
		return "thumbTip"
	case JointIndexKnuckle:
		return "indexKnuckle"
	case JointIndexTip:
		return "indexTip"
	case JointMiddleKnuckle:
		return "middleKnuckle"
	case JointMiddleTip:
		return "middleTip"
	case JointRingKnuckle:
		return "ringKnuckle"
	case JointRingTip:
		return "ringTip"
	case JointLittleKnuckle:
		return "littleKnuckle"
	case JointLittleTip:
		return "littleTip"
	default:
		return "unknown"
	}
}

// Joint is one skeleton joint sample. Pose chains joint-local space through
// the limb anchor into world space. Untracked joints still carry the
// sensor's estimated pose; classifiers decide how much to trust them.
type Joint struct {
	Tracked bool
	Pose    vmath.Transform
}
