package bench

import (
	"math"
	"testing"
)

func TestCalcInts(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		wantBest float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []int{5}, 5, 5, 0},
		{"spread", []int{2, 4, 6}, 2, 4, 2},
		{"constant", []int{3, 3, 3, 3}, 3, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Calc(tt.values)
			if s.N != len(tt.values) {
				t.Errorf("N = %d, ожидалось %d", s.N, len(tt.values))
			}
			if s.Best != tt.wantBest {
				t.Errorf("Best = %g, ожидалось %g", s.Best, tt.wantBest)
			}
			if math.Abs(s.Mean-tt.wantMean) > 1e-9 {
				t.Errorf("Mean = %g, ожидалось %g", s.Mean, tt.wantMean)
			}
			if math.Abs(s.Std-tt.wantStd) > 1e-9 {
				t.Errorf("Std = %g, ожидалось %g", s.Std, tt.wantStd)
			}
		})
	}
}

func TestCalcFloats(t *testing.T) {
	s := Calc([]float64{1.5, 2.5, 3.5})
	if s.Best != 1.5 {
		t.Errorf("Best = %g, ожидалось 1.5", s.Best)
	}
	if math.Abs(s.Mean-2.5) > 1e-9 {
		t.Errorf("Mean = %g, ожидалось 2.5", s.Mean)
	}
	if math.Abs(s.Std-1.0) > 1e-9 {
		t.Errorf("Std = %g, ожидалось 1.0", s.Std)
	}
}
