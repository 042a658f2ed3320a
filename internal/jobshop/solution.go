package jobshop

import (
	"fmt"
	"math/rand"
)

// Solution — перестановка с повторениями: идентификатор работы j
// встречается ровно len(Ops[j]) раз; k-е вхождение обозначает
// k-ю операцию работы j. Само по себе решение не несёт временной
// информации — расписание всегда вычисляется декодером.
type Solution []int

// Clone возвращает независимую копию решения.
func (s Solution) Clone() Solution {
	out := make(Solution, len(s))
	copy(out, s)
	return out
}

// RandomSolution строит случайное решение: мультимножество идентификаторов
// работ формируется по спискам операций и случайно перемешивается.
func RandomSolution(inst *Instance, rng *rand.Rand) Solution {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	sol := make(Solution, 0, inst.TotalOps())
	for j, ops := range inst.Ops {
		for range ops {
			sol = append(sol, j)
		}
	}
	shuffleSolution(sol, rng)
	return sol
}

// shuffleSolution выполняет случайную перестановку элементов (Фишер–Йетс).
func shuffleSolution(s Solution, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// ValidateSolution проверяет, что мультимножество идентификаторов работ
// в решении соответствует экземпляру задачи.
func ValidateSolution(sol Solution, inst *Instance) error {
	if len(sol) != inst.TotalOps() {
		return fmt.Errorf("длина решения должна быть %d (получено %d)", inst.TotalOps(), len(sol))
	}
	counts := make([]int, inst.Jobs)
	for i, j := range sol {
		if j < 0 || j >= inst.Jobs {
			return fmt.Errorf("решение[%d]=%d вне диапазона [0,%d)", i, j, inst.Jobs)
		}
		counts[j]++
	}
	for j, c := range counts {
		if c != len(inst.Ops[j]) {
			return fmt.Errorf("работа %d встречается %d раз (ожидалось %d)", j, c, len(inst.Ops[j]))
		}
	}
	return nil
}
