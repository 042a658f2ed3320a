package jobshop

import (
	"errors"
	"math/rand"
)

// ErrNoNeighbor возвращается, когда за отведённое число попыток не нашлось
// пары соседних элементов с разными работами (вырожденный случай:
// последовательность из одной работы).
var ErrNoNeighbor = errors.New("соседнее решение не найдено: нет смежной пары с разными работами")

// Neighbor формирует соседнее решение обменом случайной пары соседних
// элементов, принадлежащих разным работам. Такой обмен сохраняет
// мультимножество идентификаторов, а значит и допустимость решения.
// Исходное решение не изменяется.
func Neighbor(sol Solution, rng *rand.Rand) (Solution, error) {
	out := sol.Clone()
	if err := NeighborInPlace(out, rng); err != nil {
		return nil, err
	}
	return out, nil
}

// NeighborInPlace — вариант для горячего цикла: мутирует переданный буфер.
// До n попыток выбора случайного индекса i из [0, n-2]; пара с одинаковыми
// работами пропускается (обмен был бы холостым в пространстве расписаний).
func NeighborInPlace(sol Solution, rng *rand.Rand) error {
	n := len(sol)
	if n < 2 {
		return ErrNoNeighbor
	}
	for attempt := 0; attempt < n; attempt++ {
		i := rng.Intn(n - 1)
		if sol[i] != sol[i+1] {
			sol[i], sol[i+1] = sol[i+1], sol[i]
			return nil
		}
	}
	return ErrNoNeighbor
}
