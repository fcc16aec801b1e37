package utils

import (
	"math"
	"testing"
)

func TestHaversineDistanceSamePoint(t *testing.T) {
	if d := HaversineDistance(5.6037, -0.1870, 5.6037, -0.1870); d != 0 {
		t.Errorf("expected zero distance for identical points, got %v", d)
	}
}

func TestHaversineDistanceKnownPair(t *testing.T) {
	// Accra to Kumasi, roughly 200 km
	d := HaversineDistance(5.6037, -0.1870, 6.6885, -1.6244)
	if math.Abs(d-200) > 15 {
		t.Errorf("Accra-Kumasi distance = %v km, expected about 200", d)
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	a := HaversineDistance(5.6037, -0.1870, 6.6885, -1.6244)
	b := HaversineDistance(6.6885, -1.6244, 5.6037, -0.1870)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestIsWithinRadius(t *testing.T) {
	if !IsWithinRadius(5.6037, -0.1870, 5.6137, -0.1970, 5) {
		t.Error("expected nearby point to be within 5 km")
	}
	if IsWithinRadius(5.6037, -0.1870, 6.6885, -1.6244, 5) {
		t.Error("expected distant point to be outside 5 km")
	}
}
