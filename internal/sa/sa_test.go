package sa

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"jobShop/internal/jobshop"
)

func testConfig() Config {
	return Config{
		InitialTemp:       10.0,
		FinalTemp:         0.5,
		Alpha:             0.9,
		IterationsPerTemp: 50,
	}
}

func testInstance(t *testing.T) *jobshop.Instance {
	t.Helper()
	inst := jobshop.RandomInstance(5, 4, 1, 20, rand.New(rand.NewSource(123)))
	return inst
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"zero initial temp", func(c *Config) { c.InitialTemp = 0 }, true},
		{"zero final temp", func(c *Config) { c.FinalTemp = 0 }, true},
		{"final >= initial", func(c *Config) { c.FinalTemp = c.InitialTemp }, true},
		{"alpha zero", func(c *Config) { c.Alpha = 0 }, true},
		{"alpha one", func(c *Config) { c.Alpha = 1 }, true},
		{"zero iterations", func(c *Config) { c.IterationsPerTemp = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestSolveBestCostMonotonic(t *testing.T) {
	inst := testInstance(t)

	solver, err := New(testConfig(), rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := solver.Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	hist := res.History
	if hist == nil {
		t.Fatal("история запуска не заполнена")
	}
	for i := 1; i < len(hist.BestCost); i++ {
		if hist.BestCost[i] > hist.BestCost[i-1] {
			t.Fatalf("серия лучших стоимостей возрастает на шаге %d: %d > %d", i, hist.BestCost[i], hist.BestCost[i-1])
		}
	}
	if got := hist.BestCost[len(hist.BestCost)-1]; got != res.Makespan {
		t.Errorf("последняя лучшая стоимость %d != итоговый makespan %d", got, res.Makespan)
	}

	if err := jobshop.ValidateSolution(res.Solution, inst); err != nil {
		t.Errorf("недопустимое итоговое решение: %v", err)
	}
	if _, ms, err := jobshop.Decode(res.Solution, inst); err != nil || ms != res.Makespan {
		t.Errorf("повторное декодирование: makespan=%d err=%v, ожидалось %d", ms, err, res.Makespan)
	}
}

func TestSolveHistoryShape(t *testing.T) {
	inst := testInstance(t)
	cfg := testConfig()

	solver, err := New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := solver.Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	hist := res.History
	// Начальная запись + одна на уровень температуры
	wantLen := res.Iterations + 1
	if len(hist.BestCost) != wantLen || len(hist.CurrentCost) != wantLen || len(hist.Temperature) != wantLen {
		t.Errorf("длины серий best=%d current=%d temp=%d, ожидалось %d",
			len(hist.BestCost), len(hist.CurrentCost), len(hist.Temperature), wantLen)
	}
	if hist.TotalMoves != res.Iterations*cfg.IterationsPerTemp {
		t.Errorf("TotalMoves = %d, ожидалось %d", hist.TotalMoves, res.Iterations*cfg.IterationsPerTemp)
	}
	if hist.AcceptedWorse > hist.TotalMoves {
		t.Errorf("AcceptedWorse (%d) больше TotalMoves (%d)", hist.AcceptedWorse, hist.TotalMoves)
	}
	if hist.Temperature[0] != cfg.InitialTemp {
		t.Errorf("первая температура %f, ожидалась %f", hist.Temperature[0], cfg.InitialTemp)
	}
}

func TestSolveDeterminism(t *testing.T) {
	inst := testInstance(t)

	run := func(seed int64) (jobshop.Solution, int, *struct {
		Best, Curr []int
		Temp       []float64
		AW, TM     int
	}) {
		solver, err := New(testConfig(), rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		res, err := solver.Solve(context.Background(), inst)
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		h := res.History
		return res.Solution, res.Makespan, &struct {
			Best, Curr []int
			Temp       []float64
			AW, TM     int
		}{h.BestCost, h.CurrentCost, h.Temperature, h.AcceptedWorse, h.TotalMoves}
	}

	sol1, ms1, h1 := run(42)
	sol2, ms2, h2 := run(42)

	if ms1 != ms2 {
		t.Errorf("makespan различается: %d vs %d", ms1, ms2)
	}
	if !reflect.DeepEqual(sol1, sol2) {
		t.Errorf("решения различаются: %v vs %v", sol1, sol2)
	}
	if !reflect.DeepEqual(h1, h2) {
		t.Error("истории запусков различаются")
	}
}

func TestSolveDegenerateInstance(t *testing.T) {
	// Единственная работа: оператор окрестности не может дать соседа
	inst, err := jobshop.NewInstance(1, 2, [][]jobshop.Operation{
		{{Machine: 0, Duration: 1}, {Machine: 1, Duration: 2}},
	})
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}

	solver, err := New(testConfig(), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := solver.Solve(context.Background(), inst); !errors.Is(err, jobshop.ErrNoNeighbor) {
		t.Errorf("ожидалась ErrNoNeighbor, получено %v", err)
	}
}

func TestSolveContextCancel(t *testing.T) {
	inst := testInstance(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver, err := New(testConfig(), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := solver.Solve(ctx, inst)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ожидалась context.Canceled, получено %v", err)
	}
	if res.Meta["stopped"] != "context" {
		t.Errorf("Meta[stopped] = %v, ожидалось \"context\"", res.Meta["stopped"])
	}
}

func TestNewNilRng(t *testing.T) {
	if _, err := New(testConfig(), nil); err == nil {
		t.Error("ожидалась ошибка для nil rng")
	}
}
