package gesture

import "github.com/petgprojects/ElementalWarrior-sub000/parameter"

// Config carries every classifier threshold so detection is tunable
// without touching downstream state machines. Zero value is unusable;
// start from DefaultConfig.
type Config struct {
	// Open-palm-up
	PalmUpDot          float64
	FingerExtensionMin float64

	// Closed-fist vote
	FistVotesRequired        int
	FistRelaxedVotesRequired int
	FistPalmAlignmentMax     float64
	FistThumbProximityMax    float64
	FistCurlRatioMax         float64
	FistFingertipSpreadMax   float64

	// Forward-facing palm
	PalmForwardDot      float64
	PalmForwardUpReject float64

	// Bimanual extended-arms pose, entry and sustain thresholds
	PalmDownDot        float64
	PalmDownSustainDot float64
	ArmExtendedMin     float64
	ArmExtendedSustain float64
	ChestDrop          float64
}

// DefaultConfig returns the tuned baseline thresholds.
func DefaultConfig() Config {
	return Config{
		PalmUpDot:          parameter.PalmUpDotThreshold,
		FingerExtensionMin: parameter.FingerExtensionMin,

		FistVotesRequired:        parameter.FistVotesRequired,
		FistRelaxedVotesRequired: parameter.FistRelaxedVotesRequired,
		FistPalmAlignmentMax:     parameter.FistPalmAlignmentMax,
		FistThumbProximityMax:    parameter.FistThumbProximityMax,
		FistCurlRatioMax:         parameter.FistCurlRatioMax,
		FistFingertipSpreadMax:   parameter.FistFingertipSpreadMax,

		PalmForwardDot:      parameter.PalmForwardDotThreshold,
		PalmForwardUpReject: parameter.PalmForwardUpRejectMax,

		PalmDownDot:        parameter.PalmDownDotThreshold,
		PalmDownSustainDot: parameter.PalmDownSustainDotThreshold,
		ArmExtendedMin:     parameter.ArmExtendedMinProjection,
		ArmExtendedSustain: parameter.ArmExtendedSustainProjection,
		ChestDrop:          parameter.ChestDropBelowHead,
	}
}
