package recommend

import (
	"math"
	"testing"
)

func TestScoreKnownValues(t *testing.T) {
	cases := []struct {
		name   string
		rating float64
		count  int
		want   float64
	}{
		{"no signal floors at base", 0, 0, 0.5},
		{"max rating and saturated popularity", 5, 12, 1.0},
		{"max rating exactly at saturation", 5, 10, 1.0},
		{"half rating no popularity", 2.5, 0, 0.65},
		{"rating only", 5, 0, 0.8},
		{"popularity only", 0, 10, 0.7},
		{"partial popularity", 0, 5, 0.6},
		{"rounding to two decimals", 4.2, 3, 0.81}, // 0.5 + 0.252 + 0.06 = 0.812
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.rating, tc.count)
			if got != tc.want {
				t.Fatalf("Score(%v, %d) = %v, want %v", tc.rating, tc.count, got, tc.want)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	for rating := 0.0; rating <= 5.0; rating += 0.5 {
		for count := 0; count <= 25; count++ {
			got := Score(rating, count)
			if got < 0.5 || got > 1.0 {
				t.Fatalf("Score(%v, %d) = %v out of [0.5, 1.0]", rating, count, got)
			}
		}
	}
}

func TestScoreMonotone(t *testing.T) {
	// non-decreasing in rating for fixed count
	for count := 0; count <= 15; count += 3 {
		prev := math.Inf(-1)
		for rating := 0.0; rating <= 5.0; rating += 0.25 {
			got := Score(rating, count)
			if got < prev {
				t.Fatalf("score decreased in rating at (%v, %d): %v < %v", rating, count, got, prev)
			}
			prev = got
		}
	}

	// non-decreasing in count for fixed rating
	for _, rating := range []float64{0, 1.5, 3, 5} {
		prev := math.Inf(-1)
		for count := 0; count <= 20; count++ {
			got := Score(rating, count)
			if got < prev {
				t.Fatalf("score decreased in count at (%v, %d): %v < %v", rating, count, got, prev)
			}
			prev = got
		}
	}
}

func TestScoreSaturates(t *testing.T) {
	at := Score(5, 10)
	for count := 11; count <= 100; count += 13 {
		if got := Score(5, count); got != at {
			t.Fatalf("score kept growing past saturation: Score(5, %d) = %v, want %v", count, got, at)
		}
	}
}
