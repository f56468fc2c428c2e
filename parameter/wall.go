package parameter

import "time"

// Placement entry
const (
	// WallPoseSustainDuration is how long the bimanual pose must hold before Creating begins
	WallPoseSustainDuration = 600 * time.Millisecond

	// WallConfirmedCap is the maximum simultaneously confirmed walls
	WallConfirmedCap = 3

	// WallSpawnDistance is how far ahead of the hand midpoint a new wall anchors (meters)
	WallSpawnDistance = 1.5
)

// Editing ranges
const (
	// WallWidthMin is the minimum wall width (meters)
	WallWidthMin = 0.5

	// WallWidthMax is the maximum wall width (meters)
	WallWidthMax = 3.0

	// WallHeightMax is the world height of a full-fraction wall (meters)
	WallHeightMax = 2.2

	// WallRotationLimit is the maximum rotation offset from the session base (radians, ±90°)
	WallRotationLimit = 1.5707963267948966

	// WallElevationChest is the hand elevation mapped to height fraction 0 (meters)
	WallElevationChest = 1.1

	// WallElevationEye is the hand elevation mapped to height fraction 1 (meters)
	WallElevationEye = 1.6
)

// Bimanual fist actions
const (
	// WallFistSyncWindow is the window within which both limbs must fist for a simultaneous action
	WallFistSyncWindow = 300 * time.Millisecond

	// WallPoseBreakGrace is how long the placement pose may lapse before the
	// session ends; curling from flat palms into fists passes through frames
	// that classify as neither, so fist actions land inside this window
	WallPoseBreakGrace = 600 * time.Millisecond

	// WallEmberHeightFraction is the height fraction at or below which a simultaneous fist despawns instead of confirms
	WallEmberHeightFraction = 0.1

	// WallEmberPulseInterval is the ember-glow pulse period while editing at minimum height
	WallEmberPulseInterval = 500 * time.Millisecond

	// WallDespawnAnimationDuration is the removal animation length
	WallDespawnAnimationDuration = 350 * time.Millisecond
)

// Gaze selection
const (
	// WallGazeSelectionRadius is the maximum gaze-ray miss distance from a wall center (meters)
	WallGazeSelectionRadius = 0.6

	// WallGazeDwellDuration is how long gaze must stay on a wall before it is selected
	WallGazeDwellDuration = 800 * time.Millisecond

	// WallGazeRayLength is the gaze ray length used for dwell checks (meters)
	WallGazeRayLength = 8.0
)
