package opt

import (
	"context"
	"time"

	"jobShop/internal/jobshop"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *jobshop.Instance) (Result, error)
}

type Result struct {
	Solution    jobshop.Solution
	Makespan    int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	History     *History
	Meta        map[string]any
}
