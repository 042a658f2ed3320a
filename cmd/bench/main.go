package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"jobShop/internal/bench"
	"jobShop/internal/es"
	"jobShop/internal/opt"
	"jobShop/internal/sa"
	"jobShop/internal/ts"
)

// Фабрики

func newSAFactory(cfg sa.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := sa.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newESFactory(cfg es.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := es.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newTSFactory(cfg ts.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ts.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func main() {
	// CLI флаги для настройки параметров алгоритмов и политики запуска
	var (
		configPath   = flag.String("config", "", "путь к YAML-файлу эксперимента (флаги имеют приоритет)")
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		pairs        = flag.String("pairs", "10x5,20x10", "конфигурации: количество работ Х количество станков (через запятую)")
		algos        = flag.String("algos", "SA,ES,TS", "список алгоритмов: SA, ES, TS (через запятую)")
		runs         = flag.Int("runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		workers      = flag.Int("workers", 1, "количество параллельных воркеров на конфигурацию (1 — последовательно)")

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

	ctx := context.Background()

	// Явно заданные флаги имеют приоритет над YAML-конфигурацией
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *configPath != "" {
		cfg, err := bench.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка загрузки конфигурации:", err)
			os.Exit(2)
		}
		applyFileConfig(cfg, explicit,
			out, pairs, algos, runs, baseSeed, instanceSeed, perRunTO, workers,
			saT0, saTmin, saAlpha, saIter,
			esMu, esLambda, esGen, esStrength,
			tsIter, tsIterPerOp, tsTenure, tsTenureRand, tsNeighbors,
		)
	}

	cases, err := parsePairs(*pairs, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	saCfg := sa.Config{
		InitialTemp:       *saT0,
		FinalTemp:         *saTmin,
		Alpha:             *saAlpha,
		IterationsPerTemp: *saIter,
	}
	if err := saCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации имитации отжига:", err)
		os.Exit(2)
	}

	esCfg := es.Config{
		Mu:              *esMu,
		Lambda:          *esLambda,
		Generations:     *esGen,
		InitialStrength: *esStrength,
	}
	if err := esCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации эволюционной стратегии:", err)
		os.Exit(2)
	}

	tsCfg := ts.Config{
		Iterations:       *tsIter,
		IterationsPerOp:  *tsIterPerOp,
		TabuTenure:       *tsTenure,
		TabuTenureRand:   *tsTenureRand,
		NeighborsPerIter: *tsNeighbors,
	}
	if err := tsCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации табу-поиска:", err)
		os.Exit(2)
	}

	available := map[string]bench.Algorithm{
		"SA": {Name: "SA", Factory: newSAFactory(saCfg)},
		"ES": {Name: "ES", Factory: newESFactory(esCfg)},
		"TS": {Name: "TS", Factory: newTSFactory(tsCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
		Workers:       *workers,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; %d работ %d станков (общее кол-во запусков=%d)...\n", a.Name, c.Jobs, c.Machines, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Makespan: лучший=%d средний=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms стандартное отклонение=%.2fms\n",
				rec.MakespanBest, rec.MakespanMean, rec.MakespanStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// applyFileConfig переносит значения из YAML в неуказанные явно флаги.
func applyFileConfig(cfg *bench.FileConfig, explicit map[string]bool,
	out, pairs, algos *string,
	runs *int,
	baseSeed, instanceSeed *int64,
	perRunTO *time.Duration,
	workers *int,
	saT0, saTmin, saAlpha *float64, saIter *int,
	esMu, esLambda, esGen *int, esStrength *float64,
	tsIter, tsIterPerOp, tsTenure, tsTenureRand, tsNeighbors *int,
) {
	if cfg.Out != "" && !explicit["out"] {
		*out = cfg.Out
	}
	if len(cfg.Cases) > 0 && !explicit["pairs"] {
		parts := make([]string, 0, len(cfg.Cases))
		for _, c := range cfg.Cases {
			parts = append(parts, fmt.Sprintf("%dx%d", c.Jobs, c.Machines))
		}
		*pairs = strings.Join(parts, ",")
	}
	if len(cfg.Algos) > 0 && !explicit["algos"] {
		*algos = strings.Join(cfg.Algos, ",")
	}
	if cfg.Runs > 0 && !explicit["runs"] {
		*runs = cfg.Runs
	}
	if cfg.Seed != 0 && !explicit["seed"] {
		*baseSeed = cfg.Seed
	}
	if cfg.InstanceSeed != 0 && !explicit["instance_seed"] {
		*instanceSeed = cfg.InstanceSeed
	}
	if cfg.PerRunTimeout != 0 && !explicit["per_run_timeout"] {
		*perRunTO = time.Duration(cfg.PerRunTimeout)
	}
	if cfg.Workers > 0 && !explicit["workers"] {
		*workers = cfg.Workers
	}

	if cfg.SA != nil {
		if cfg.SA.InitialTemp > 0 && !explicit["sa_t0"] {
			*saT0 = cfg.SA.InitialTemp
		}
		if cfg.SA.FinalTemp > 0 && !explicit["sa_tmin"] {
			*saTmin = cfg.SA.FinalTemp
		}
		if cfg.SA.Alpha > 0 && !explicit["sa_alpha"] {
			*saAlpha = cfg.SA.Alpha
		}
		if cfg.SA.IterationsPerTemp > 0 && !explicit["sa_iter"] {
			*saIter = cfg.SA.IterationsPerTemp
		}
	}
	if cfg.ES != nil {
		if cfg.ES.Mu > 0 && !explicit["es_mu"] {
			*esMu = cfg.ES.Mu
		}
		if cfg.ES.Lambda > 0 && !explicit["es_lambda"] {
			*esLambda = cfg.ES.Lambda
		}
		if cfg.ES.Generations > 0 && !explicit["es_gen"] {
			*esGen = cfg.ES.Generations
		}
		if cfg.ES.InitialStrength > 0 && !explicit["es_strength"] {
			*esStrength = cfg.ES.InitialStrength
		}
	}
	if cfg.TS != nil {
		if cfg.TS.Iterations > 0 && !explicit["ts_iter"] {
			*tsIter = cfg.TS.Iterations
		}
		if cfg.TS.IterationsPerOp > 0 && !explicit["ts_iter_per_op"] {
			*tsIterPerOp = cfg.TS.IterationsPerOp
		}
		if cfg.TS.TabuTenure > 0 && !explicit["ts_tenure"] {
			*tsTenure = cfg.TS.TabuTenure
		}
		if cfg.TS.TabuTenureRand > 0 && !explicit["ts_tenure_rand"] {
			*tsTenureRand = cfg.TS.TabuTenureRand
		}
		if cfg.TS.NeighborsPerIter > 0 && !explicit["ts_neighbors"] {
			*tsNeighbors = cfg.TS.NeighborsPerIter
		}
	}
}

// helpers

func parsePairs(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		jm := strings.Split(p, "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 20x10", p)
		}
		jobs, err := atoiStrict(jm[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := atoiStrict(jm[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества станков: %w", p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("пара %q: количество работ и станков должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
