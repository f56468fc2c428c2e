package core

// Chirality identifies which hand a tracked limb or sample belongs to.
type Chirality uint8

const (
	ChiralityLeft Chirality = iota
	ChiralityRight
)

// Chiralities lists both hands in a stable order for iteration.
var Chiralities = [2]Chirality{ChiralityLeft, ChiralityRight}

func (c Chirality) String() string {
	if c == ChiralityLeft {
		return "left"
	}
	return "right"
}

// Opposite returns the other hand.
func (c Chirality) Opposite() Chirality {
	if c == ChiralityLeft {
		return ChiralityRight
	}
	return ChiralityLeft
}
