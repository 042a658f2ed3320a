package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64
}

type Record struct {
	RunID    string
	Algo     string
	Jobs     int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 — без ограничения
	Workers       int           // <=1 — последовательный режим
}

type runOutcome struct {
	makespan int
	timeMs   float64
	err      error
}

// RunCase выполняет Runs независимых запусков алгоритма на одном экземпляре.
// Сиды запусков детерминированно выводятся из базового (BaseSeed + номер),
// поэтому параллельный режим даёт побитово те же результаты,
// что и последовательный.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	instRng := randForSeed(c.InstanceSeed)
	inst := jobshop.RandomInstance(c.Jobs, c.Machines, 1, 99, instRng)

	outcomes := make([]runOutcome, r.Runs)

	doRun := func(i int) runOutcome {
		runSeed := r.BaseSeed + int64(i)
		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		defer cancel()

		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)

		if err != nil && runCtx.Err() != nil {
			return runOutcome{err: fmt.Errorf("запуск %d: отменён или истёк таймаут: %w", i, err)}
		}
		if err != nil {
			return runOutcome{err: fmt.Errorf("запуск %d: ошибка солвера: %w", i, err)}
		}
		if verr := jobshop.ValidateSolution(res.Solution, inst); verr != nil {
			return runOutcome{err: fmt.Errorf("запуск %d: недопустимое решение: %w", i, verr)}
		}

		return runOutcome{
			makespan: res.Makespan,
			timeMs:   float64(dur.Microseconds()) / 1000.0,
		}
	}

	if r.Workers <= 1 {
		for i := 0; i < r.Runs; i++ {
			outcomes[i] = doRun(i)
		}
	} else {
		// Пул воркеров: результаты складываются по номеру запуска,
		// порядок завершения горутин на итог не влияет
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < r.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					outcomes[i] = doRun(i)
				}
			}()
		}
		for i := 0; i < r.Runs; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	makespans := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	for _, o := range outcomes {
		if o.err != nil {
			return Record{}, o.err
		}
		makespans = append(makespans, o.makespan)
		timesMs = append(timesMs, o.timeMs)
	}

	msStats := Calc(makespans)
	tStats := Calc(timesMs)

	return Record{
		RunID:    uuid.NewString(),
		Algo:     algo.Name,
		Jobs:     c.Jobs,
		Machines: c.Machines,
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: int(msStats.Best),
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"run_id", "algo", "jobs", "machines", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.RunID,
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
