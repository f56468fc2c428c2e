package audio

// Cue identifies one interaction sound effect.
type Cue int

const (
	CueSummon Cue = iota
	CueDespawn
	CueLaunch
	CueImpact
	CueMerge
	CueStreamIgnite
	CueWallConfirm
	CueWallReject
	CueSelect

	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueSummon:
		return "summon"
	case CueDespawn:
		return "despawn"
	case CueLaunch:
		return "launch"
	case CueImpact:
		return "impact"
	case CueMerge:
		return "merge"
	case CueStreamIgnite:
		return "streamIgnite"
	case CueWallConfirm:
		return "wallConfirm"
	case CueWallReject:
		return "wallReject"
	case CueSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Config tunes the cue sink. Zero values are replaced by defaults.
type Config struct {
	SampleRate   int
	MasterVolume float64
	CueVolumes   map[Cue]float64
	Enabled      bool
}

// DefaultConfig returns the stock sink configuration, enabled at moderate
// volume.
func DefaultConfig() *Config {
	return &Config{
		SampleRate:   44100,
		MasterVolume: 0.6,
		CueVolumes: map[Cue]float64{
			CueSummon:       0.8,
			CueDespawn:      0.5,
			CueLaunch:       0.9,
			CueImpact:       1.0,
			CueMerge:        0.9,
			CueStreamIgnite: 0.6,
			CueWallConfirm:  0.8,
			CueWallReject:   0.7,
			CueSelect:       0.4,
		},
		Enabled: true,
	}
}
