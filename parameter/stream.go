package parameter

import "time"

// Stream lifecycle
const (
	// StreamFadeDuration is the fade-and-remove length after the forward palm ends
	StreamFadeDuration = 450 * time.Millisecond

	// StreamDefaultLength is the stream length used when no geometry is in range (meters)
	StreamDefaultLength = 4.0

	// StreamMaxLength is the raycast distance cap for stream length resolution (meters)
	StreamMaxLength = 10.0
)

// Stream raycast rate limiting
const (
	// StreamRaycastInterval is the minimum interval between stream raycasts per limb
	StreamRaycastInterval = 100 * time.Millisecond

	// StreamScorchInterval is the minimum interval between scorch events at the stream hit point
	StreamScorchInterval = 250 * time.Millisecond
)

// Stream merge hysteresis
const (
	// StreamCombineDistance is the palm separation below which two streams merge (meters)
	StreamCombineDistance = 0.25

	// StreamSplitDistance is the palm separation above which a combined stream splits (meters)
	StreamSplitDistance = 0.40
)
