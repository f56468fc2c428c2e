package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/petgprojects/ElementalWarrior-sub000/gesture"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
)

// Duration wraps time.Duration so yaml files can say "1.5s" or "250ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"250ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Tuning is the runtime-adjustable surface of the engine. Fields absent
// from a loaded file keep their defaults, so a file only lists overrides.
type Tuning struct {
	Gesture    GestureTuning    `yaml:"gesture"`
	Limb       LimbTuning       `yaml:"limb"`
	Stream     StreamTuning     `yaml:"stream"`
	Projectile ProjectileTuning `yaml:"projectile"`
	Wall       WallTuning       `yaml:"wall"`
}

type GestureTuning struct {
	PalmUpDot              float64 `yaml:"palm_up_dot"`
	FingerExtensionMin     float64 `yaml:"finger_extension_min"`
	FistVotesRequired      int     `yaml:"fist_votes_required"`
	FistPalmAlignmentMax   float64 `yaml:"fist_palm_alignment_max"`
	FistThumbProximityMax  float64 `yaml:"fist_thumb_proximity_max"`
	FistCurlRatioMax       float64 `yaml:"fist_curl_ratio_max"`
	FistFingertipSpreadMax float64 `yaml:"fist_fingertip_spread_max"`
	PalmForwardDot         float64 `yaml:"palm_forward_dot"`
	PalmForwardUpReject    float64 `yaml:"palm_forward_up_reject"`
	PalmDownDot            float64 `yaml:"palm_down_dot"`
	PalmDownSustainDot     float64 `yaml:"palm_down_sustain_dot"`
	ArmExtendedMin         float64 `yaml:"arm_extended_min"`
	ArmExtendedSustain     float64 `yaml:"arm_extended_sustain"`
}

type LimbTuning struct {
	SummonCooldown    Duration `yaml:"summon_cooldown"`
	DespawnGrace      Duration `yaml:"despawn_grace"`
	TrackingLossGrace Duration `yaml:"tracking_loss_grace"`
	PunchVelocityMin  float64  `yaml:"punch_velocity_min"`
	PunchProximity    float64  `yaml:"punch_proximity"`
	LaunchSpeed       float64  `yaml:"launch_speed"`
	MergeDistance     float64  `yaml:"merge_distance"`
}

type StreamTuning struct {
	RaycastInterval Duration `yaml:"raycast_interval"`
	ScorchInterval  Duration `yaml:"scorch_interval"`
	CombineDistance float64  `yaml:"combine_distance"`
	SplitDistance   float64  `yaml:"split_distance"`
	MaxLength       float64  `yaml:"max_length"`
	DefaultLength   float64  `yaml:"default_length"`
}

type ProjectileTuning struct {
	MaxRange float64 `yaml:"max_range"`
	TickRate int     `yaml:"tick_rate"`
}

type WallTuning struct {
	PoseSustain         Duration `yaml:"pose_sustain"`
	FistSyncWindow      Duration `yaml:"fist_sync_window"`
	GazeDwell           Duration `yaml:"gaze_dwell"`
	GazeSelectionRadius float64  `yaml:"gaze_selection_radius"`
	EmberHeightFraction float64  `yaml:"ember_height_fraction"`
	ConfirmedCap        int      `yaml:"confirmed_cap"`
	WidthMin            float64  `yaml:"width_min"`
	WidthMax            float64  `yaml:"width_max"`
}

// Default returns the baseline tuning mirroring the compiled constants.
func Default() Tuning {
	return Tuning{
		Gesture: GestureTuning{
			PalmUpDot:              parameter.PalmUpDotThreshold,
			FingerExtensionMin:     parameter.FingerExtensionMin,
			FistVotesRequired:      parameter.FistVotesRequired,
			FistPalmAlignmentMax:   parameter.FistPalmAlignmentMax,
			FistThumbProximityMax:  parameter.FistThumbProximityMax,
			FistCurlRatioMax:       parameter.FistCurlRatioMax,
			FistFingertipSpreadMax: parameter.FistFingertipSpreadMax,
			PalmForwardDot:         parameter.PalmForwardDotThreshold,
			PalmForwardUpReject:    parameter.PalmForwardUpRejectMax,
			PalmDownDot:            parameter.PalmDownDotThreshold,
			PalmDownSustainDot:     parameter.PalmDownSustainDotThreshold,
			ArmExtendedMin:         parameter.ArmExtendedMinProjection,
			ArmExtendedSustain:     parameter.ArmExtendedSustainProjection,
		},
		Limb: LimbTuning{
			SummonCooldown:    Duration(parameter.SummonCooldown),
			DespawnGrace:      Duration(parameter.DespawnGraceWindow),
			TrackingLossGrace: Duration(parameter.TrackingLossGrace),
			PunchVelocityMin:  parameter.PunchVelocityMin,
			PunchProximity:    parameter.PunchProximityRadius,
			LaunchSpeed:       parameter.LaunchSpeed,
			MergeDistance:     parameter.MergeCombineDistance,
		},
		Stream: StreamTuning{
			RaycastInterval: Duration(parameter.StreamRaycastInterval),
			ScorchInterval:  Duration(parameter.StreamScorchInterval),
			CombineDistance: parameter.StreamCombineDistance,
			SplitDistance:   parameter.StreamSplitDistance,
			MaxLength:       parameter.StreamMaxLength,
			DefaultLength:   parameter.StreamDefaultLength,
		},
		Projectile: ProjectileTuning{
			MaxRange: parameter.ProjectileMaxRange,
			TickRate: parameter.ProjectileTickRate,
		},
		Wall: WallTuning{
			PoseSustain:         Duration(parameter.WallPoseSustainDuration),
			FistSyncWindow:      Duration(parameter.WallFistSyncWindow),
			GazeDwell:           Duration(parameter.WallGazeDwellDuration),
			GazeSelectionRadius: parameter.WallGazeSelectionRadius,
			EmberHeightFraction: parameter.WallEmberHeightFraction,
			ConfirmedCap:        parameter.WallConfirmedCap,
			WidthMin:            parameter.WallWidthMin,
			WidthMax:            parameter.WallWidthMax,
		},
	}
}

// Load reads yaml overrides on top of the defaults.
func Load(r io.Reader) (Tuning, error) {
	t := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&t); err != nil && err != io.EOF {
		return Tuning{}, fmt.Errorf("decoding tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LoadFile reads yaml overrides from path. A missing file is not an
// error; it just means defaults.
func LoadFile(path string) (Tuning, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Tuning{}, fmt.Errorf("opening tuning file: %w", err)
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values that would wedge a state machine or invert a
// hysteresis pair.
func (t *Tuning) Validate() error {
	g := t.Gesture
	for name, dot := range map[string]float64{
		"gesture.palm_up_dot":            g.PalmUpDot,
		"gesture.palm_forward_dot":       g.PalmForwardDot,
		"gesture.palm_forward_up_reject": g.PalmForwardUpReject,
		"gesture.palm_down_dot":          g.PalmDownDot,
		"gesture.palm_down_sustain_dot":  g.PalmDownSustainDot,
	} {
		if dot < -1 || dot > 1 {
			return fmt.Errorf("%s must be within [-1, 1], got %v", name, dot)
		}
	}
	if g.FistVotesRequired < 1 || g.FistVotesRequired > 4 {
		return fmt.Errorf("gesture.fist_votes_required must be 1..4, got %d", g.FistVotesRequired)
	}
	if g.PalmDownSustainDot > g.PalmDownDot {
		return fmt.Errorf("gesture.palm_down_sustain_dot %v exceeds the entry threshold %v", g.PalmDownSustainDot, g.PalmDownDot)
	}
	if g.ArmExtendedSustain > g.ArmExtendedMin {
		return fmt.Errorf("gesture.arm_extended_sustain %v exceeds the entry threshold %v", g.ArmExtendedSustain, g.ArmExtendedMin)
	}

	if t.Limb.DespawnGrace <= 0 {
		return fmt.Errorf("limb.despawn_grace must be positive")
	}
	if t.Limb.PunchVelocityMin <= 0 {
		return fmt.Errorf("limb.punch_velocity_min must be positive")
	}
	if t.Limb.MergeDistance <= 0 {
		return fmt.Errorf("limb.merge_distance must be positive")
	}

	if t.Stream.SplitDistance <= t.Stream.CombineDistance {
		return fmt.Errorf("stream.split_distance %v must exceed combine_distance %v for hysteresis",
			t.Stream.SplitDistance, t.Stream.CombineDistance)
	}
	if t.Stream.RaycastInterval <= 0 {
		return fmt.Errorf("stream.raycast_interval must be positive")
	}

	if t.Projectile.MaxRange <= 0 {
		return fmt.Errorf("projectile.max_range must be positive")
	}
	if t.Projectile.TickRate <= 0 {
		return fmt.Errorf("projectile.tick_rate must be positive")
	}

	if t.Wall.ConfirmedCap < 1 {
		return fmt.Errorf("wall.confirmed_cap must be at least 1")
	}
	if t.Wall.EmberHeightFraction < 0 || t.Wall.EmberHeightFraction > 1 {
		return fmt.Errorf("wall.ember_height_fraction must be within [0, 1], got %v", t.Wall.EmberHeightFraction)
	}
	if t.Wall.WidthMin <= 0 || t.Wall.WidthMax < t.Wall.WidthMin {
		return fmt.Errorf("wall width range [%v, %v] invalid", t.Wall.WidthMin, t.Wall.WidthMax)
	}
	return nil
}

// GestureConfig maps the tuning into the classifier's config.
func (t *Tuning) GestureConfig() gesture.Config {
	base := gesture.DefaultConfig()
	g := t.Gesture
	base.PalmUpDot = g.PalmUpDot
	base.FingerExtensionMin = g.FingerExtensionMin
	base.FistVotesRequired = g.FistVotesRequired
	base.FistPalmAlignmentMax = g.FistPalmAlignmentMax
	base.FistThumbProximityMax = g.FistThumbProximityMax
	base.FistCurlRatioMax = g.FistCurlRatioMax
	base.FistFingertipSpreadMax = g.FistFingertipSpreadMax
	base.PalmForwardDot = g.PalmForwardDot
	base.PalmForwardUpReject = g.PalmForwardUpReject
	base.PalmDownDot = g.PalmDownDot
	base.PalmDownSustainDot = g.PalmDownSustainDot
	base.ArmExtendedMin = g.ArmExtendedMin
	base.ArmExtendedSustain = g.ArmExtendedSustain
	return base
}
