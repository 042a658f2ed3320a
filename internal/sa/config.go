package sa

import "fmt"

type Config struct {
	InitialTemp float64
	FinalTemp   float64
	Alpha       float64

	// Количество оценок соседей на одном уровне температуры
	IterationsPerTemp int
}

func DefaultConfig() Config {
	return Config{
		InitialTemp: 200.0,
		FinalTemp:   0.01,
		Alpha:       0.997,

		IterationsPerTemp: 1000,
	}
}

func (c Config) Validate() error {
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf(
			"FinalTemp должно быть > 0 (получено %f)",
			c.FinalTemp,
		)
	}
	if c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	if c.IterationsPerTemp <= 0 {
		return fmt.Errorf(
			"IterationsPerTemp должно быть > 0 (получено %d)",
			c.IterationsPerTemp,
		)
	}
	return nil
}
