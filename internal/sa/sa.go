package sa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// Solver — локальный поиск с геометрическим охлаждением (имитация отжига)
// над перестановкой с повторениями.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

	// Оценка значения целевой функции для job-shop задачи
	dec, err := jobshop.NewDecoder(inst)
	if err != nil {
		return opt.Result{}, err
	}

	// Начальное случайное решение
	curr := jobshop.RandomSolution(inst, s.Rng)
	currCost := dec.MustMakespan(curr)
	evals := 1

	best := curr.Clone()
	bestCost := currCost

	cand := curr.Clone()

	hist := &opt.History{
		CurrentCost: []int{currCost},
		BestCost:    []int{bestCost},
		Temperature: []float64{s.Cfg.InitialTemp},
	}

	T := s.Cfg.InitialTemp
	epochs := 0

	for T > s.Cfg.FinalTemp {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Solution:    best,
				Makespan:    bestCost,
				Evaluations: evals,
				Iterations:  epochs,
				Duration:    time.Since(start),
				History:     hist,
				Meta: map[string]any{
					"stopped": "context",
					"T":       T,
				},
			}, err
		}

		for it := 0; it < s.Cfg.IterationsPerTemp; it++ {
			copy(cand, curr)
			if err := jobshop.NeighborInPlace(cand, s.Rng); err != nil {
				// Соседей нет (вырожденный экземпляр) — поиск невозможен
				return opt.Result{}, fmt.Errorf("имитация отжига: %w", err)
			}

			candCost := dec.MustMakespan(cand)
			evals++

			delta := candCost - currCost
			if delta < 0 {
				// Улучшающее решение принимаем всегда
				curr, cand = cand, curr
				currCost = candCost
			} else {
				// Критерий Метрополиса:
				// ухудшающее (или равное) решение принимается с вероятностью e^(-delta/T)
				p := math.Exp(-float64(delta) / T)
				if s.Rng.Float64() < p {
					curr, cand = cand, curr
					currCost = candCost
					hist.AcceptedWorse++
				}
			}

			hist.TotalMoves++

			// Обновление глобально лучшего решения
			// (независимо от принятия хода)
			if currCost < bestCost {
				bestCost = currCost
				copy(best, curr)
			}
		}

		// Одна запись истории на уровень температуры
		hist.CurrentCost = append(hist.CurrentCost, currCost)
		hist.BestCost = append(hist.BestCost, bestCost)
		hist.Temperature = append(hist.Temperature, T)

		// Геометрическое охлаждение
		T *= s.Cfg.Alpha
		epochs++
	}

	return opt.Result{
		Solution:    best,
		Makespan:    bestCost,
		Evaluations: evals,
		Iterations:  epochs,
		Duration:    time.Since(start),
		History:     hist,
		Meta: map[string]any{
			"initial_temp":        s.Cfg.InitialTemp,
			"final_temp":          s.Cfg.FinalTemp,
			"alpha":               s.Cfg.Alpha,
			"iterations_per_temp": s.Cfg.IterationsPerTemp,
		},
	}, nil
}
