package vmath

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi stays", math.Pi, math.Pi},
		{"negative pi wraps to pi", -math.Pi, math.Pi},
		{"past pi wraps negative", math.Pi + 0.5, -math.Pi + 0.5},
		{"full turn", 2 * math.Pi, 0},
		{"negative full turn", -2 * math.Pi, 0},
		{"three turns plus quarter", 6*math.Pi + math.Pi/4, math.Pi / 4},
	}
	for _, tc := range cases {
		got := NormalizeAngle(tc.in)
		if math.Abs(got-tc.want) > floatTol {
			t.Errorf("%s: Expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Expected 3, got %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := Clamp(1.5, 0, 3); got != 1.5 {
		t.Errorf("Expected 1.5, got %v", got)
	}
	if got := Clamp01(1.2); got != 1 {
		t.Errorf("Expected 1, got %v", got)
	}
	if got := Clamp01(-0.2); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
}
