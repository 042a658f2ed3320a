package opt

// History — телеметрия запуска, только для добавления в конце.
// Заполняется движком по ходу поиска и далее не изменяется;
// внешние потребители (отчёты, графики) читают её как есть.
// Серии температур заполняет отжиг, серии средних значений
// и силы мутации — эволюционная стратегия.
type History struct {
	CurrentCost []int
	BestCost    []int
	Temperature []float64
	AvgCost     []float64
	Strength    []float64

	AcceptedWorse int
	TotalMoves    int
}
