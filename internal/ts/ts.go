package ts

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

// maxInt используется как бесконечность для стоимостей.
const maxInt = int(^uint(0) >> 1)

// Solver — табу-поиск над перестановкой с повторениями.
// Ходы — обмены соседних элементов с разными работами, поэтому
// мультимножество идентификаторов сохраняется автоматически.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый TS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve — основной цикл алгоритма.
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

	n := inst.TotalOps()
	if n < 2 {
		return opt.Result{}, fmt.Errorf("табу-поиск: %w", jobshop.ErrNoNeighbor)
	}

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerOp * n
	}

	curr := jobshop.RandomSolution(inst, s.Rng)
	currCost := dec.MustMakespan(curr)
	evals := 1

	best := curr.Clone()
	bestCost := currCost

	cand := curr.Clone()

	hist := &opt.History{
		CurrentCost: []int{currCost},
		BestCost:    []int{bestCost},
	}

	// Табу-список — кольцевой буфер с мапой,
	// ёмкость с запасом относительно длины табу
	tabu := newTabuList(max(32, (s.Cfg.TabuTenure+s.Cfg.TabuTenureRand)*4))

	for iter := 0; iter < maxIter; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Solution:    best,
				Makespan:    bestCost,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(start),
				History:     hist,
				Meta: map[string]any{
					"stopped": "context",
				},
			}, err
		}

		// Лучший допустимый ход
		bestMovePos := -1
		bestMoveCost := maxInt

		// Запасной ход (лучший без учёта табу),
		// используется если все допустимые ходы табуированы
		fallbackPos := -1
		fallbackCost := maxInt

		for k := 0; k < s.Cfg.NeighborsPerIter; k++ {
			i := s.Rng.Intn(n - 1)
			if curr[i] == curr[i+1] {
				// Холостой обмен в пространстве расписаний
				continue
			}

			copy(cand, curr)
			cand[i], cand[i+1] = cand[i+1], cand[i]

			cost := dec.MustMakespan(cand)
			evals++

			if cost < fallbackCost {
				fallbackCost = cost
				fallbackPos = i
			}

			isTabu := tabu.IsTabu(moveKey(curr[i+1], curr[i], i), iter)
			aspiration := cost < bestCost // критерий аспирации

			if isTabu && !aspiration {
				continue
			}

			if cost < bestMoveCost {
				bestMoveCost = cost
				bestMovePos = i
			}
		}

		chosenPos, chosenCost := bestMovePos, bestMoveCost
		if chosenPos < 0 {
			chosenPos, chosenCost = fallbackPos, fallbackCost
		}

		// Все кандидаты оказались холостыми — ход пропускается
		if chosenPos < 0 {
			hist.CurrentCost = append(hist.CurrentCost, currCost)
			hist.BestCost = append(hist.BestCost, bestCost)
			continue
		}

		// Применение выбранного хода и табуирование обратного
		jobLeft, jobRight := curr[chosenPos], curr[chosenPos+1]
		curr[chosenPos], curr[chosenPos+1] = jobRight, jobLeft
		currCost = chosenCost

		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		tabu.Add(moveKey(jobLeft, jobRight, chosenPos), iter+tenure)

		// Обновление глобально лучшего решения
		if currCost < bestCost {
			bestCost = currCost
			copy(best, curr)
		}

		hist.CurrentCost = append(hist.CurrentCost, currCost)
		hist.BestCost = append(hist.BestCost, bestCost)
	}

	return opt.Result{
		Solution:    best,
		Makespan:    bestCost,
		Evaluations: evals,
		Iterations:  maxIter,
		Duration:    time.Since(start),
		History:     hist,
		Meta: map[string]any{
			"tabu_tenure":        s.Cfg.TabuTenure,
			"tabu_tenure_rand":   s.Cfg.TabuTenureRand,
			"neighbors_per_iter": s.Cfg.NeighborsPerIter,
		},
	}, nil
}

// tabuList — кольцевой буфер фиксированного размера
// с map для быстрой проверки табуированности.
type tabuList struct {
	m   map[uint64]int // ключ → итерация истечения табу
	key []uint64       // кольцевой буфер ключей
	exp []int          // соответствующие сроки истечения
	i   int            // текущая позиция в кольце
}

func newTabuList(capacity int) *tabuList {
	if capacity < 8 {
		capacity = 8
	}
	return &tabuList{
		m:   make(map[uint64]int, capacity*2),
		key: make([]uint64, capacity),
		exp: make([]int, capacity),
		i:   0,
	}
}

// IsTabu проверяет, является ли ход табуированным на текущей итерации.
func (t *tabuList) IsTabu(k uint64, iter int) bool {
	if exp, ok := t.m[k]; ok && exp > iter {
		return true
	}
	return false
}

// Add добавляет новый табу-ход с указанием итерации истечения.
func (t *tabuList) Add(k uint64, expiry int) {
	// Удаление старого элемента из кольцевого буфера
	oldK := t.key[t.i]
	oldExp := t.exp[t.i]
	if oldK != 0 {
		if curExp, ok := t.m[oldK]; ok && curExp == oldExp {
			delete(t.m, oldK)
		}
	}

	t.key[t.i] = k
	t.exp[t.i] = expiry
	t.m[k] = expiry

	t.i++
	if t.i >= len(t.key) {
		t.i = 0
	}
}

// moveKey формирует ключ хода: пара работ и позиция обмена.
func moveKey(left, right, pos int) uint64 {
	return (uint64(uint32(left)) << 42) |
		(uint64(uint32(right)) << 21) |
		uint64(uint32(pos))
}

// max возвращает максимум из двух целых чисел.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
