package es

import "fmt"

type Config struct {
	// Mu — количество родителей (выживших), Lambda — потомков за поколение
	Mu     int
	Lambda int

	Generations int

	// Начальная сила мутации: количество обменов соседних элементов
	InitialStrength float64
}

func DefaultConfig() Config {
	return Config{
		Mu:     10,
		Lambda: 30,

		Generations: 500,

		InitialStrength: 5,
	}
}

func (c Config) Validate() error {
	if c.Mu <= 0 {
		return fmt.Errorf(
			"Mu должно быть > 0 (получено %d)",
			c.Mu,
		)
	}
	if c.Lambda <= 0 {
		return fmt.Errorf(
			"Lambda должно быть > 0 (получено %d)",
			c.Lambda,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"количество поколений должно быть > 0 (получено %d)",
			c.Generations,
		)
	}
	if c.InitialStrength < minStrength || c.InitialStrength > maxStrength {
		return fmt.Errorf(
			"InitialStrength должно лежать в диапазоне [%g,%g] (получено %f)",
			minStrength, maxStrength, c.InitialStrength,
		)
	}
	return nil
}
