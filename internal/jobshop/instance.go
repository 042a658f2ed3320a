package jobshop

import (
	"errors"
	"fmt"
	"math/rand"
)

// Operation — одна операция работы: станок и длительность обработки.
type Operation struct {
	Machine  int
	Duration int
}

// Instance — неизменяемое описание задачи job-shop.
// Ops[j] — упорядоченный список операций работы j;
// операции выполняются строго в указанном порядке.
// Работа может посещать один станок несколько раз или не посещать вовсе.
type Instance struct {
	Jobs     int
	Machines int
	Ops      [][]Operation
}

func NewInstance(jobs, machines int, ops [][]Operation) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, Ops: ops}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("экземпляр задачи не задан (nil)")
	}
	if inst.Jobs <= 0 {
		return fmt.Errorf("количество работ должно быть > 0 (получено %d)", inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("количество станков должно быть > 0 (получено %d)", inst.Machines)
	}
	if len(inst.Ops) != inst.Jobs {
		return fmt.Errorf("количество списков операций должно быть %d (получено %d)", inst.Jobs, len(inst.Ops))
	}
	for j, ops := range inst.Ops {
		for k, op := range ops {
			if op.Machine < 0 || op.Machine >= inst.Machines {
				return fmt.Errorf("работа %d, операция %d: станок %d вне диапазона [0,%d)", j, k, op.Machine, inst.Machines)
			}
			if op.Duration < 0 {
				return fmt.Errorf("работа %d, операция %d: длительность должна быть >= 0 (получено %d)", j, k, op.Duration)
			}
		}
	}
	return nil
}

// TotalOps возвращает суммарное количество операций по всем работам.
// Совпадает с длиной допустимого решения.
func (inst *Instance) TotalOps() int {
	total := 0
	for _, ops := range inst.Ops {
		total += len(ops)
	}
	return total
}

// RandomInstance генерирует классический экземпляр job-shop:
// каждая работа посещает каждый станок ровно один раз в случайном порядке,
// длительности равномерны в [minTime, maxTime].
func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	span := maxTime - minTime + 1
	ops := make([][]Operation, jobs)
	order := make([]int, machines)
	for j := range ops {
		for m := range order {
			order[m] = m
		}
		// Случайный порядок посещения станков
		for i := len(order) - 1; i > 0; i-- {
			k := rng.Intn(i + 1)
			order[i], order[k] = order[k], order[i]
		}
		row := make([]Operation, machines)
		for k, m := range order {
			d := minTime
			if span > 1 {
				d += rng.Intn(span)
			}
			row[k] = Operation{Machine: m, Duration: d}
		}
		ops[j] = row
	}
	inst, err := NewInstance(jobs, machines, ops)
	if err != nil {
		panic(err)
	}
	return inst
}
