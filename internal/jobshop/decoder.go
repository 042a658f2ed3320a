package jobshop

import "fmt"

// Decode строит по решению полное расписание и значение makespan.
// Чистая детерминированная функция: один линейный проход по решению,
// счётчик уже размещённых операций и время освобождения по каждой работе,
// время освобождения по каждому станку. Нарушение мультимножества
// (вхождений работы больше, чем у неё операций) — явная ошибка,
// а не молча искажённое расписание.
func Decode(sol Solution, inst *Instance) (Schedule, int, error) {
	if err := inst.Validate(); err != nil {
		return nil, 0, err
	}

	jobOpCount := make([]int, inst.Jobs)
	jobEnd := make([]int, inst.Jobs)
	machineEnd := make([]int, inst.Machines)
	sch := make(Schedule, 0, len(sol))

	for i, j := range sol {
		if j < 0 || j >= inst.Jobs {
			return nil, 0, fmt.Errorf("решение[%d]=%d вне диапазона [0,%d)", i, j, inst.Jobs)
		}
		k := jobOpCount[j]
		if k >= len(inst.Ops[j]) {
			return nil, 0, fmt.Errorf("решение[%d]: вхождение %d работы %d превышает количество её операций (%d)", i, k, j, len(inst.Ops[j]))
		}
		op := inst.Ops[j][k]

		start := jobEnd[j]
		if machineEnd[op.Machine] > start {
			start = machineEnd[op.Machine]
		}
		end := start + op.Duration

		sch = append(sch, ScheduleEntry{Job: j, Op: k, Machine: op.Machine, Start: start, End: end})

		jobEnd[j] = end
		machineEnd[op.Machine] = end
		jobOpCount[j] = k + 1
	}

	makespan := 0
	for _, t := range machineEnd {
		if t > makespan {
			makespan = t
		}
	}
	return sch, makespan, nil
}

// Decoder — оценщик makespan с переиспользуемыми буферами для горячего
// пути поисковых алгоритмов (без построения расписания). Один Decoder
// на один движок: из-за общих буферов он непригоден для одновременных
// вызовов из нескольких горутин — параллелизм организуется на уровне
// независимых запусков со своими Decoder'ами.
type Decoder struct {
	inst       *Instance
	jobOpCount []int
	jobEnd     []int
	machineEnd []int
}

func NewDecoder(inst *Instance) (*Decoder, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{
		inst:       inst,
		jobOpCount: make([]int, inst.Jobs),
		jobEnd:     make([]int, inst.Jobs),
		machineEnd: make([]int, inst.Machines),
	}, nil
}

// Makespan вычисляет значение целевой функции для решения.
func (d *Decoder) Makespan(sol Solution) (int, error) {
	if d == nil || d.inst == nil {
		return 0, fmt.Errorf("nil decoder")
	}
	if len(sol) != d.inst.TotalOps() {
		return 0, fmt.Errorf("длина решения должна быть %d (получено %d)", d.inst.TotalOps(), len(sol))
	}

	for j := range d.jobOpCount {
		d.jobOpCount[j] = 0
		d.jobEnd[j] = 0
	}
	for m := range d.machineEnd {
		d.machineEnd[m] = 0
	}

	for i, j := range sol {
		if j < 0 || j >= d.inst.Jobs {
			return 0, fmt.Errorf("решение[%d]=%d вне диапазона [0,%d)", i, j, d.inst.Jobs)
		}
		k := d.jobOpCount[j]
		if k >= len(d.inst.Ops[j]) {
			return 0, fmt.Errorf("решение[%d]: вхождение %d работы %d превышает количество её операций (%d)", i, k, j, len(d.inst.Ops[j]))
		}
		op := d.inst.Ops[j][k]

		start := d.jobEnd[j]
		if d.machineEnd[op.Machine] > start {
			start = d.machineEnd[op.Machine]
		}
		end := start + op.Duration

		d.jobEnd[j] = end
		d.machineEnd[op.Machine] = end
		d.jobOpCount[j] = k + 1
	}

	makespan := 0
	for _, t := range d.machineEnd {
		if t > makespan {
			makespan = t
		}
	}
	return makespan, nil
}

func (d *Decoder) MustMakespan(sol Solution) int {
	ms, err := d.Makespan(sol)
	if err != nil {
		panic(err)
	}
	return ms
}
