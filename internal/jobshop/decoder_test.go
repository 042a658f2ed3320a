package jobshop

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func twoByTwoInstance(t *testing.T) *Instance {
	t.Helper()
	inst, err := NewInstance(2, 2, [][]Operation{
		{{Machine: 0, Duration: 3}, {Machine: 1, Duration: 2}},
		{{Machine: 1, Duration: 2}, {Machine: 0, Duration: 1}},
	})
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	return inst
}

func TestDecodeLiteralCase(t *testing.T) {
	inst := twoByTwoInstance(t)

	sch, makespan, err := Decode(Solution{0, 1, 0, 1}, inst)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if makespan != 5 {
		t.Errorf("makespan = %d, ожидалось 5", makespan)
	}

	want := Schedule{
		{Job: 0, Op: 0, Machine: 0, Start: 0, End: 3},
		{Job: 1, Op: 0, Machine: 1, Start: 0, End: 2},
		{Job: 0, Op: 1, Machine: 1, Start: 3, End: 5},
		{Job: 1, Op: 1, Machine: 0, Start: 3, End: 4},
	}
	if !reflect.DeepEqual(sch, want) {
		t.Errorf("расписание = %v, ожидалось %v", sch, want)
	}
}

func TestDecodeFeasibility(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	tests := []struct {
		name     string
		jobs     int
		machines int
	}{
		{"2x2", 2, 2},
		{"5x3", 5, 3},
		{"10x10", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := RandomInstance(tt.jobs, tt.machines, 1, 99, rng)
			for trial := 0; trial < 20; trial++ {
				sol := RandomSolution(inst, rng)

				sch, makespan, err := Decode(sol, inst)
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				if err := sch.Validate(inst); err != nil {
					t.Fatalf("недопустимое расписание: %v", err)
				}
				if len(sch) != inst.TotalOps() {
					t.Fatalf("записей в расписании %d, ожидалось %d", len(sch), inst.TotalOps())
				}

				maxEnd := 0
				for _, e := range sch {
					if e.End > maxEnd {
						maxEnd = e.End
					}
				}
				if makespan != maxEnd {
					t.Fatalf("makespan = %d, максимум End = %d", makespan, maxEnd)
				}
			}
		})
	}
}

func TestDecoderMatchesDecode(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inst := RandomInstance(6, 4, 1, 50, rng)

	dec, err := NewDecoder(inst)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	for trial := 0; trial < 50; trial++ {
		sol := RandomSolution(inst, rng)

		_, want, err := Decode(sol, inst)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		got, err := dec.Makespan(sol)
		if err != nil {
			t.Fatalf("Makespan: %v", err)
		}
		if got != want {
			t.Fatalf("Decoder.Makespan = %d, Decode = %d", got, want)
		}
	}
}

func TestDecodeOccurrenceOutOfRange(t *testing.T) {
	inst := twoByTwoInstance(t)

	// Работа 0 встречается 4 раза при двух операциях
	bad := Solution{0, 0, 0, 0}

	if _, _, err := Decode(bad, inst); err == nil {
		t.Error("Decode: ожидалась ошибка выхода за диапазон операций")
	} else if !strings.Contains(err.Error(), "превышает") {
		t.Errorf("Decode: неожиданная ошибка: %v", err)
	}

	dec, err := NewDecoder(inst)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if _, err := dec.Makespan(bad); err == nil {
		t.Error("Decoder.Makespan: ожидалась ошибка выхода за диапазон операций")
	}
}

func TestDecodeJobIDOutOfRange(t *testing.T) {
	inst := twoByTwoInstance(t)

	if _, _, err := Decode(Solution{0, 1, 0, 5}, inst); err == nil {
		t.Error("Decode: ожидалась ошибка для работы вне диапазона")
	}
	if _, _, err := Decode(Solution{0, 1, 0, -1}, inst); err == nil {
		t.Error("Decode: ожидалась ошибка для отрицательной работы")
	}
}
