package parameter

// Event queue
const (
	// EventQueueCapacity is the event ring size; must be a power of two
	EventQueueCapacity = 1024

	// EventQueueMask maps monotonically growing indices onto ring slots
	EventQueueMask = EventQueueCapacity - 1
)

// Launch direction fallbacks
const (
	// LaunchGazeMinLen rejects degenerate head-forward vectors below this length
	LaunchGazeMinLen = 1e-6

	// LaunchVelocityMinLen is the minimum limb speed for the velocity-direction fallback (meters/sec)
	LaunchVelocityMinLen = 0.05
)
