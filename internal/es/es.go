package es

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// Границы силы мутации (правило 1/5 не выводит её за эти пределы)
const (
	minStrength = 1.0
	maxStrength = 20.0
)

// individual — пара (решение, стоимость); решения после оценки не мутируются.
type individual struct {
	Sol  jobshop.Solution
	Cost int
}

// Solver — эволюционная стратегия (μ+λ) с самоадаптацией силы мутации
// по правилу 1/5 Рехенберга.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый ES-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *jobshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	dec, err := jobshop.NewDecoder(inst)
	if err != nil {
		return opt.Result{}, err
	}

	mu := s.Cfg.Mu
	lambda := s.Cfg.Lambda

	// Инициализация μ случайных родителей
	pop := make([]individual, mu)
	for i := range pop {
		sol := jobshop.RandomSolution(inst, s.Rng)
		pop[i] = individual{Sol: sol, Cost: dec.MustMakespan(sol)}
	}
	evals := mu

	// Сортировка по возрастанию стоимости; стабильная,
	// чтобы порядок равных по стоимости особей был воспроизводим
	sortByCost(pop)

	best := pop[0].Sol.Clone()
	bestCost := pop[0].Cost

	strength := s.Cfg.InitialStrength

	hist := &opt.History{
		BestCost: []int{bestCost},
		AvgCost:  []float64{avgCost(pop)},
		Strength: []float64{strength},
	}

	offspring := make([]individual, 0, lambda)
	combined := make([]individual, 0, mu+lambda)

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Solution:    best,
				Makespan:    bestCost,
				Evaluations: evals,
				Iterations:  gen,
				Duration:    time.Since(start),
				History:     hist,
				Meta: map[string]any{
					"stopped":  "context",
					"strength": strength,
				},
			}, err
		}

		offspring = offspring[:0]
		successes := 0

		// λ потомков: случайный родитель + мутация текущей силы
		reps := mutationReps(strength)
		for l := 0; l < lambda; l++ {
			parent := pop[s.Rng.Intn(mu)]

			child := parent.Sol.Clone()
			for r := 0; r < reps; r++ {
				if err := jobshop.NeighborInPlace(child, s.Rng); err != nil {
					return opt.Result{}, fmt.Errorf("эволюционная стратегия: %w", err)
				}
			}

			cost := dec.MustMakespan(child)
			evals++

			offspring = append(offspring, individual{Sol: child, Cost: cost})

			// Успех для правила 1/5: потомок строго лучше родителя
			if cost < parent.Cost {
				successes++
			}
		}

		// Селекция "+": μ лучших из объединения родителей и потомков
		combined = combined[:0]
		combined = append(combined, pop...)
		combined = append(combined, offspring...)
		sortByCost(combined)
		copy(pop, combined[:mu])

		// Обновление глобально лучшего решения
		if pop[0].Cost < bestCost {
			bestCost = pop[0].Cost
			copy(best, pop[0].Sol)
		}

		// Адаптация силы мутации (правило 1/5 Рехенберга)
		strength = adaptStrength(strength, successes, lambda)

		hist.BestCost = append(hist.BestCost, bestCost)
		hist.AvgCost = append(hist.AvgCost, avgCost(pop))
		hist.Strength = append(hist.Strength, strength)
	}

	return opt.Result{
		Solution:    best,
		Makespan:    bestCost,
		Evaluations: evals,
		Iterations:  s.Cfg.Generations,
		Duration:    time.Since(start),
		History:     hist,
		Meta: map[string]any{
			"mu":             s.Cfg.Mu,
			"lambda":         s.Cfg.Lambda,
			"generations":    s.Cfg.Generations,
			"final_strength": strength,
		},
	}, nil
}

// mutationReps возвращает количество применений оператора окрестности
// для текущей силы мутации: max(1, round(strength)).
func mutationReps(strength float64) int {
	reps := int(math.Round(strength))
	if reps < 1 {
		reps = 1
	}
	return reps
}

// adaptStrength применяет правило 1/5:
// доля успехов > 0.2 — расширяем шаг (×1.2),
// < 0.2 — сужаем (×0.85), ровно 0.2 — без изменений.
// После адаптации сила ограничивается диапазоном [1, 20].
func adaptStrength(strength float64, successes, lambda int) float64 {
	rate := float64(successes) / float64(lambda)
	switch {
	case rate > 0.2:
		strength *= 1.2
	case rate < 0.2:
		strength *= 0.85
	}
	if strength < minStrength {
		strength = minStrength
	}
	if strength > maxStrength {
		strength = maxStrength
	}
	return strength
}

func sortByCost(pop []individual) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].Cost < pop[j].Cost
	})
}

func avgCost(pop []individual) float64 {
	sum := 0
	for _, ind := range pop {
		sum += ind.Cost
	}
	return float64(sum) / float64(len(pop))
}
