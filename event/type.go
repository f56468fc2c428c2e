package event

import "time"

// EventType identifies an interaction event emitted to collaborators
// (rendering, audio, UI). The engine never consumes its own events.
type EventType int

const (
	// === Held Element Events ===

	// EventElementSummoned signals a new held element scaling in
	// Trigger: open-palm-up while the limb is idle and off cooldown
	// Payload: *ElementPayload
	EventElementSummoned EventType = iota

	// EventElementUpdated signals a held element tracking its hand
	// Trigger: every frame while held or in the despawn grace window
	// Payload: *ElementPayload
	EventElementUpdated

	// EventElementDespawned signals a held element extinguished
	// Trigger: despawn grace expiry, or forced cleanup on tracking loss
	// Payload: *ElementPayload
	EventElementDespawned

	// EventElementLaunched signals a held element detached into flight
	// Trigger: fist + velocity + proximity while holding
	// Payload: *ElementLaunchedPayload
	EventElementLaunched

	// EventElementMerged signals two held elements combined into one
	// Trigger: both limbs holding within the combine distance
	// Payload: *ElementMergedPayload
	EventElementMerged

	// === Stream Events ===

	// EventStreamStarted signals a palm stream igniting
	// Trigger: forward-facing palm while the limb has no held element
	// Payload: *StreamPayload
	EventStreamStarted

	// EventStreamUpdated signals stream origin/direction/length changes
	// Trigger: every frame while the forward palm holds
	// Payload: *StreamPayload
	EventStreamUpdated

	// EventStreamStopped signals a stream beginning its fade-out
	// Trigger: forward palm released, or forced cleanup on tracking loss
	// Payload: *StreamPayload
	EventStreamStopped

	// EventStreamsMerged signals two streams collapsed into one
	// Trigger: both streams within the combine distance
	// Payload: *StreamMergePayload
	EventStreamsMerged

	// EventStreamsSplit signals a combined stream separating again
	// Trigger: palm separation beyond the split distance (hysteresis)
	// Payload: *StreamMergePayload
	EventStreamsSplit

	// EventStreamScorch signals the stream burning its mesh hit point
	// Trigger: rate-limited while a stream intersects cached geometry
	// Payload: *ScorchPayload
	EventStreamScorch

	// === Projectile Events ===

	// EventProjectileImpact signals a projectile striking cached geometry
	// Trigger: swept raycast hit during the flight tick
	// Payload: *ProjectileImpactPayload
	EventProjectileImpact

	// EventProjectileExpired signals a projectile exceeding max range
	// Trigger: travelled distance past the range limit with no hit
	// Payload: *ProjectileExpiredPayload
	EventProjectileExpired

	// === Wall Events ===

	// EventWallCreated signals a new wall record entering editing
	// Trigger: sustained bimanual palms-down pose
	// Payload: *WallPayload
	EventWallCreated

	// EventWallUpdated signals wall geometry changing while edited
	// Trigger: hand movement during an editing session
	// Payload: *WallPayload
	EventWallUpdated

	// EventWallConfirmed signals a wall locked into the world
	// Trigger: simultaneous bimanual fist while editing above ember height
	// Payload: *WallPayload
	EventWallConfirmed

	// EventWallSelected signals a confirmed wall picked by gaze dwell
	// Trigger: gaze ray within the selection radius for the dwell time
	// Payload: *WallPayload
	EventWallSelected

	// EventWallDeselected signals gaze leaving a selected wall
	// Trigger: gaze ray outside the selection radius
	// Payload: *WallPayload
	EventWallDeselected

	// EventWallDespawned signals a wall removed
	// Trigger: simultaneous fist at ember height, or pose break mid-create
	// Payload: *WallPayload
	EventWallDespawned

	// EventWallRejected signals a confirm refused at the wall cap
	// Trigger: confirm attempt with the confirmed count at maximum
	// Payload: *WallRejectedPayload
	EventWallRejected

	// EventWallEmberPulse signals the ember glow while at minimum height
	// Trigger: repeating timer during editing at ember height
	// Payload: *WallPayload
	EventWallEmberPulse

	// === Tracking Events ===

	// EventTrackingLost signals a limb entering the tracking-loss grace
	// Trigger: sensor reporting the limb untracked
	// Payload: *TrackingPayload
	EventTrackingLost

	// EventTrackingRecovered signals a limb resuming inside the grace
	// Trigger: sensor reporting the limb tracked again before expiry
	// Payload: *TrackingPayload
	EventTrackingRecovered
)

func (t EventType) String() string {
	switch t {
	case EventElementSummoned:
		return "elementSummoned"
	case EventElementUpdated:
		return "elementUpdated"
	case EventElementDespawned:
		return "elementDespawned"
	case EventElementLaunched:
		return "elementLaunched"
	case EventElementMerged:
		return "elementMerged"
	case EventStreamStarted:
		return "streamStarted"
	case EventStreamUpdated:
		return "streamUpdated"
	case EventStreamStopped:
		return "streamStopped"
	case EventStreamsMerged:
		return "streamsMerged"
	case EventStreamsSplit:
		return "streamsSplit"
	case EventStreamScorch:
		return "streamScorch"
	case EventProjectileImpact:
		return "projectileImpact"
	case EventProjectileExpired:
		return "projectileExpired"
	case EventWallCreated:
		return "wallCreated"
	case EventWallUpdated:
		return "wallUpdated"
	case EventWallConfirmed:
		return "wallConfirmed"
	case EventWallSelected:
		return "wallSelected"
	case EventWallDeselected:
		return "wallDeselected"
	case EventWallDespawned:
		return "wallDespawned"
	case EventWallRejected:
		return "wallRejected"
	case EventWallEmberPulse:
		return "wallEmberPulse"
	case EventTrackingLost:
		return "trackingLost"
	case EventTrackingRecovered:
		return "trackingRecovered"
	default:
		return "unknown"
	}
}

// Event is one emitted interaction event with its engine timestamp.
type Event struct {
	Type    EventType
	Time    time.Time
	Payload any
}
