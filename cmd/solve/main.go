package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"jobShop/internal/es"
	"jobShop/internal/jobshop"
	"jobShop/internal/opt"
	"jobShop/internal/sa"
	"jobShop/internal/ts"
)

func main() {
	var (
		file = flag.String("file", "", "путь к файлу экземпляра (каталог или одиночный)")
		name = flag.String("name", "", "имя экземпляра в каталоге (пусто — одиночный файл)")
		algo = flag.String("algo", "sa", "алгоритм: sa | es | ts")
		seed = flag.Int64("seed", 42, "сид генератора случайных чисел")

		// --- Имитация отжига ---
		saT0    = flag.Float64("sa_t0", 200.0, "начальная температура")
		saTmin  = flag.Float64("sa_tmin", 0.01, "конечная температура")
		saAlpha = flag.Float64("sa_alpha", 0.997, "коэффициент охлаждения (alpha)")
		saIter  = flag.Int("sa_iter", 1000, "количество оценок соседей на уровень температуры")

		// --- Эволюционная стратегия (μ+λ) ---
		esMu       = flag.Int("es_mu", 10, "количество родителей (μ)")
		esLambda   = flag.Int("es_lambda", 30, "количество потомков за поколение (λ)")
		esGen      = flag.Int("es_gen", 500, "количество поколений")
		esStrength = flag.Float64("es_strength", 5, "начальная сила мутации")

		// --- Табу-поиск ---
		tsIterPerOp  = flag.Int("ts_iter_per_op", 50, "количество итераций на одну операцию (используется, если ts_iter == 0)")
		tsIter       = flag.Int("ts_iter", 0, "общее количество итераций (0 => ts_iter_per_op × количество операций)")
		tsTenure     = flag.Int("ts_tenure", 7, "длина табу-списка (в итерациях)")
		tsTenureRand = flag.Int("ts_tenure_rand", 3, "случайное добавление к сроку табу [0..rand]")
		tsNeighbors  = flag.Int("ts_neighbors", 60, "количество рассматриваемых соседей на итерацию")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Не указан файл экземпляра")
		fmt.Fprintln(os.Stderr, "Примеры:")
		fmt.Fprintln(os.Stderr, "  solve -file jobshop.txt -name ft06 -algo sa")
		fmt.Fprintln(os.Stderr, "  solve -file new_instance.txt -algo es")
		os.Exit(2)
	}

	inst, err := jobshop.LoadInstance(*file, *name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка загрузки экземпляра:", err)
		os.Exit(1)
	}

	fmt.Printf("Экземпляр: %d работ × %d станков\n", inst.Jobs, inst.Machines)

	rng := rand.New(rand.NewSource(*seed))

	var solver opt.Optimizer
	switch *algo {
	case "sa":
		s, err := sa.New(sa.Config{
			InitialTemp:       *saT0,
			FinalTemp:         *saTmin,
			Alpha:             *saAlpha,
			IterationsPerTemp: *saIter,
		}, rng)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в конфигурации имитации отжига:", err)
			os.Exit(2)
		}
		solver = s
	case "es":
		s, err := es.New(es.Config{
			Mu:              *esMu,
			Lambda:          *esLambda,
			Generations:     *esGen,
			InitialStrength: *esStrength,
		}, rng)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в конфигурации эволюционной стратегии:", err)
			os.Exit(2)
		}
		solver = s
	case "ts":
		s, err := ts.New(ts.Config{
			Iterations:       *tsIter,
			IterationsPerOp:  *tsIterPerOp,
			TabuTenure:       *tsTenure,
			TabuTenureRand:   *tsTenureRand,
			NeighborsPerIter: *tsNeighbors,
		}, rng)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в конфигурации табу-поиска:", err)
			os.Exit(2)
		}
		solver = s
	default:
		fmt.Fprintf(os.Stderr, "Неизвестный алгоритм %q; доступные: sa, es, ts\n", *algo)
		os.Exit(2)
	}

	res, err := solver.Solve(context.Background(), inst)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}

	fmt.Printf("Лучший makespan: %d\n", res.Makespan)
	fmt.Printf("Оценок целевой функции: %d, итераций: %d, время: %v\n", res.Evaluations, res.Iterations, res.Duration)
	if res.History != nil && res.History.TotalMoves > 0 {
		fmt.Printf("Всего ходов: %d, принято ухудшающих: %d\n", res.History.TotalMoves, res.History.AcceptedWorse)
	}
	if res.History != nil && len(res.History.Strength) > 0 {
		fmt.Printf("Итоговая сила мутации: %.2f\n", res.History.Strength[len(res.History.Strength)-1])
	}

	sch, _, err := jobshop.Decode(res.Solution, inst)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка декодирования решения:", err)
		os.Exit(1)
	}
	if err := sch.Validate(inst); err != nil {
		fmt.Fprintln(os.Stderr, "Недопустимое расписание:", err)
		os.Exit(1)
	}

	// Вывод расписания по станкам в хронологическом порядке
	sort.Slice(sch, func(i, j int) bool {
		if sch[i].Machine != sch[j].Machine {
			return sch[i].Machine < sch[j].Machine
		}
		return sch[i].Start < sch[j].Start
	})
	fmt.Println("\nРасписание (работа, операция, станок, начало, конец):")
	for _, e := range sch {
		fmt.Printf("  Работа %2d, операция %2d → станок %2d  [%5d - %5d]\n", e.Job, e.Op, e.Machine, e.Start, e.End)
	}
}
