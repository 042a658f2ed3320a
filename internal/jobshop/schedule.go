package jobshop

import "fmt"

// ScheduleEntry — одна запланированная операция.
type ScheduleEntry struct {
	Job     int
	Op      int
	Machine int
	Start   int
	End     int
}

// Schedule — расписание, выведенное из решения; по одной записи на операцию
// в порядке обхода решения.
type Schedule []ScheduleEntry

// Validate проверяет допустимость расписания: порядок операций внутри
// каждой работы и отсутствие пересечений интервалов на каждом станке.
func (sch Schedule) Validate(inst *Instance) error {
	lastJobEnd := make([]int, inst.Jobs)
	lastJobOp := make([]int, inst.Jobs)
	for j := range lastJobOp {
		lastJobOp[j] = -1
	}
	machineEnd := make([]int, inst.Machines)

	for i, e := range sch {
		if e.Job < 0 || e.Job >= inst.Jobs {
			return fmt.Errorf("запись %d: работа %d вне диапазона [0,%d)", i, e.Job, inst.Jobs)
		}
		if e.Machine < 0 || e.Machine >= inst.Machines {
			return fmt.Errorf("запись %d: станок %d вне диапазона [0,%d)", i, e.Machine, inst.Machines)
		}
		if e.Op != lastJobOp[e.Job]+1 {
			return fmt.Errorf("запись %d: операция %d работы %d нарушает порядок (ожидалась %d)", i, e.Op, e.Job, lastJobOp[e.Job]+1)
		}
		if e.Start < lastJobEnd[e.Job] {
			return fmt.Errorf("запись %d: операция %d работы %d начинается в %d до завершения предыдущей (%d)", i, e.Op, e.Job, e.Start, lastJobEnd[e.Job])
		}
		if e.Start < machineEnd[e.Machine] {
			return fmt.Errorf("запись %d: пересечение интервалов на станке %d (начало %d < %d)", i, e.Machine, e.Start, machineEnd[e.Machine])
		}
		if e.End < e.Start {
			return fmt.Errorf("запись %d: конец %d раньше начала %d", i, e.End, e.Start)
		}
		lastJobOp[e.Job] = e.Op
		lastJobEnd[e.Job] = e.End
		machineEnd[e.Machine] = e.End
	}
	return nil
}
