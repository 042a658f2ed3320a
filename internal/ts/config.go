package ts

import "fmt"

type Config struct {
	Iterations      int
	IterationsPerOp int

	// Базовая длина табу и случайная добавка к ней [0..rand]
	TabuTenure     int
	TabuTenureRand int

	NeighborsPerIter int
}

func DefaultConfig() Config {
	return Config{
		Iterations:      0,
		IterationsPerOp: 50,

		TabuTenure:     7,
		TabuTenureRand: 3,

		NeighborsPerIter: 60,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerOp <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerOp > 0",
		)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"TabuTenure должно быть > 0 (получено %d)",
			c.TabuTenure,
		)
	}
	if c.TabuTenureRand < 0 {
		return fmt.Errorf(
			"TabuTenureRand должно быть >= 0 (получено %d)",
			c.TabuTenureRand,
		)
	}
	if c.NeighborsPerIter <= 0 {
		return fmt.Errorf(
			"NeighborsPerIter должно быть > 0 (получено %d)",
			c.NeighborsPerIter,
		)
	}
	return nil
}
