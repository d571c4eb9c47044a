package entity

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{name: "partial", s1: at(9, 0), e1: at(10, 0), s2: at(9, 30), e2: at(10, 30), want: true},
		{name: "contained", s1: at(9, 0), e1: at(12, 0), s2: at(10, 0), e2: at(11, 0), want: true},
		{name: "identical", s1: at(9, 0), e1: at(10, 0), s2: at(9, 0), e2: at(10, 0), want: true},
		{name: "touching", s1: at(9, 0), e1: at(10, 0), s2: at(10, 0), e2: at(11, 0), want: false},
		{name: "disjoint", s1: at(9, 0), e1: at(10, 0), s2: at(11, 0), e2: at(12, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps(A, B) = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.s2, tt.e2, tt.s1, tt.e1); got != tt.want {
				t.Errorf("Overlaps(B, A) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapsSymmetricGrid(t *testing.T) {
	for s1 := 0; s1 < 6; s1++ {
		for e1 := s1 + 1; e1 <= 6; e1++ {
			for s2 := 0; s2 < 6; s2++ {
				for e2 := s2 + 1; e2 <= 6; e2++ {
					a, b := Overlaps(at(s1, 0), at(e1, 0), at(s2, 0), at(e2, 0)), Overlaps(at(s2, 0), at(e2, 0), at(s1, 0), at(e1, 0))
					if a != b {
						t.Fatalf("asymmetric for [%d,%d) [%d,%d)", s1, e1, s2, e2)
					}
					if (e1 <= s2 || e2 <= s1) && a {
						t.Fatalf("[%d,%d) [%d,%d) reported overlapping", s1, e1, s2, e2)
					}
				}
			}
		}
	}
}
