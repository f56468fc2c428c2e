package parameter

import "time"

// Open-palm-up detection
const (
	// PalmUpDotThreshold is the minimum palm-normal · world-up for an upward-facing palm
	PalmUpDotThreshold = 0.4

	// FingerExtensionMin is the minimum fingertip-to-knuckle distance for an extended finger (meters)
	FingerExtensionMin = 0.05
)

// Closed-fist vote signals
const (
	// FistVotesRequired is the minimum passing signals out of the four fist measures
	FistVotesRequired = 3

	// FistRelaxedVotesRequired is the looser vote used when rejecting fists inside the bimanual pose check
	FistRelaxedVotesRequired = 2

	// FistPalmAlignmentMax is the maximum palm-to-finger direction alignment for a curled hand
	FistPalmAlignmentMax = 0.75

	// FistThumbProximityMax is the maximum thumb-tip distance to the curled-finger centroid (meters)
	FistThumbProximityMax = 0.07

	// FistCurlRatioMax is the maximum fingertip-to-wrist over knuckle-to-wrist distance ratio
	FistCurlRatioMax = 1.4

	// FistFingertipSpreadMax is the maximum pairwise fingertip spread for a closed hand (meters)
	FistFingertipSpreadMax = 0.08
)

// Forward-facing palm ("stop" pose)
const (
	// PalmForwardDotThreshold is the minimum palm-normal · head-forward alignment
	PalmForwardDotThreshold = 0.6

	// PalmForwardUpRejectMax is the maximum |palm-normal · world-up| before the pose reads as sky/floor-facing
	PalmForwardUpRejectMax = 0.5
)

// Bimanual extended-arms pose (wall placement entry)
const (
	// PalmDownDotThreshold is the minimum palm-normal · world-down for a downward-facing palm
	PalmDownDotThreshold = 0.55

	// PalmDownSustainDotThreshold is the relaxed palm-down alignment once the pose is already active
	PalmDownSustainDotThreshold = 0.35

	// ArmExtendedMinProjection is the minimum hand forward-of-chest projection (meters)
	ArmExtendedMinProjection = 0.25

	// ArmExtendedSustainProjection is the relaxed extension distance once the pose is already active (meters)
	ArmExtendedSustainProjection = 0.18

	// ChestDropBelowHead approximates the chest reference point as this far below the head (meters)
	ChestDropBelowHead = 0.3
)

// Velocity estimation
const (
	// VelocitySampleWindow is how long position samples are retained per limb
	VelocitySampleWindow = 250 * time.Millisecond

	// VelocityMinElapsed is the minimum sample-span below which velocity reads as zero
	VelocityMinElapsed = time.Millisecond

	// VelocityMinSamples is the minimum retained samples below which velocity reads as zero
	VelocityMinSamples = 2
)
