package bench

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration — обёртка для разбора длительностей вида "30s" из YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("некорректная длительность %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

type CaseConfig struct {
	Jobs     int `yaml:"jobs"`
	Machines int `yaml:"machines"`
}

// Блоки параметров алгоритмов. Чистые данные: пакет bench не зависит
// от пакетов движков, соответствие их Config-структурам устанавливает cmd.
type SAParams struct {
	InitialTemp       float64 `yaml:"initial_temp"`
	FinalTemp         float64 `yaml:"final_temp"`
	Alpha             float64 `yaml:"alpha"`
	IterationsPerTemp int     `yaml:"iterations_per_temp"`
}

type ESParams struct {
	Mu              int     `yaml:"mu"`
	Lambda          int     `yaml:"lambda"`
	Generations     int     `yaml:"generations"`
	InitialStrength float64 `yaml:"initial_strength"`
}

type TSParams struct {
	Iterations       int `yaml:"iterations"`
	IterationsPerOp  int `yaml:"iterations_per_op"`
	TabuTenure       int `yaml:"tabu_tenure"`
	TabuTenureRand   int `yaml:"tabu_tenure_rand"`
	NeighborsPerIter int `yaml:"neighbors_per_iter"`
}

// FileConfig — описание эксперимента, загружаемое из YAML-файла.
type FileConfig struct {
	Out           string       `yaml:"out"`
	Runs          int          `yaml:"runs"`
	Seed          int64        `yaml:"seed"`
	InstanceSeed  int64        `yaml:"instance_seed"`
	Workers       int          `yaml:"workers"`
	PerRunTimeout Duration     `yaml:"per_run_timeout"`
	Algos         []string     `yaml:"algos"`
	Cases         []CaseConfig `yaml:"cases"`

	SA *SAParams `yaml:"sa"`
	ES *ESParams `yaml:"es"`
	TS *TSParams `yaml:"ts"`
}

func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("конфигурация %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *FileConfig) Validate() error {
	if c.Runs < 0 {
		return fmt.Errorf("runs должно быть >= 0 (получено %d)", c.Runs)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers должно быть >= 0 (получено %d)", c.Workers)
	}
	for i, cs := range c.Cases {
		if cs.Jobs <= 0 || cs.Machines <= 0 {
			return fmt.Errorf("cases[%d]: количество работ и станков должно быть > 0 (получено %dx%d)", i, cs.Jobs, cs.Machines)
		}
	}
	return nil
}
