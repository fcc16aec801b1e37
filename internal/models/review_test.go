package models

import "testing"

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{"no ratings", nil, 0},
		{"single rating", []float64{4}, 4},
		{"two existing plus a new five", []float64{5, 4, 5}, 4.7},
		{"rounds to one decimal", []float64{5, 4, 4}, 4.3},
		{"all fives", []float64{5, 5, 5, 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageRating(tt.ratings); got != tt.want {
				t.Errorf("AverageRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}
