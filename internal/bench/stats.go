package bench

import "math"

type Stats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// Calc вычисляет минимум, среднее и выборочное стандартное отклонение.
func Calc[T int | float64](values []T) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := float64(values[0])
	sum := 0.0
	for _, v := range values {
		f := float64(v)
		if f < best {
			best = f
		}
		sum += f
	}
	mean := sum / float64(s.N)

	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			d := float64(v) - mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}

	s.Best = best
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	return s
}
