package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeLimit bounds a single solver run.
	DefaultTimeLimit = 10 * time.Second
	// DefaultSlotStep is the start-time granularity in minutes.
	DefaultSlotStep = 15
)

// DefaultDurations returns the candidate placement lengths in minutes.
func DefaultDurations() []int {
	return []int{30, 60}
}

// Config tunes the engine. Zero values fall back to the defaults.
type Config struct {
	TimeLimit time.Duration
	SlotStep  int
	Durations []int
	Now       func() time.Time
}

// Engine turns tasks and weekly availability into a day-by-day schedule. It holds no
// per-run state and is safe for concurrent use.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine constructs an Engine.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = DefaultTimeLimit
	}
	if cfg.SlotStep <= 0 {
		cfg.SlotStep = DefaultSlotStep
	}
	if len(cfg.Durations) == 0 {
		cfg.Durations = DefaultDurations()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Run estimates priorities, reduces workloads, builds and solves the constraint model and
// falls back to greedy packing when the solver finds nothing in time. Only invalid input
// produces an error.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	today := in.Today
	if today.IsZero() {
		today = e.cfg.Now()
	}

	tasks, err := planTasks(in.Tasks, today)
	if err != nil {
		return nil, err
	}
	days, err := NormalizeAvailability(in.Availability)
	if err != nil {
		return nil, err
	}

	demands := make([]Demand, len(tasks))
	for rank, task := range byUrgency(tasks) {
		demands[task.index] = Demand{Minutes: task.minutes, Rank: rank}
	}

	domain := BuildDomain(len(tasks), days, DomainConfig{Step: e.cfg.SlotStep, Durations: e.cfg.Durations})
	model := BuildModel(domain, demands)
	solution := Solve(ctx, model, e.cfg.TimeLimit)

	result := &Result{
		ReducedMinutes: make(map[string]float64, len(tasks)),
		Diagnostics: Diagnostics{
			SolverStatus: solution.Status,
			Candidates:   len(model.Candidates),
			Groups:       len(model.Groups),
			Conflicts:    model.ConflictPairs(),
			Nodes:        solution.Nodes,
			Elapsed:      solution.Elapsed,
		},
	}
	for _, task := range tasks {
		result.ReducedMinutes[task.name] = float64(task.minutes)
	}

	if solution.Status == SolveFeasible {
		result.Schedule = Assemble(solutionAssignments(model, tasks, solution.Chosen))
		result.Status = StatusSuccess
		result.Message = messageSuccess
	} else {
		result.Schedule = Assemble(Fallback(tasks, days))
		result.Status = StatusFallback
		result.Message = messageFallback
	}

	e.logger.Debug("schedule run finished",
		zap.String("status", string(result.Status)),
		zap.String("solver_status", string(solution.Status)),
		zap.Int("candidates", result.Diagnostics.Candidates),
		zap.Int("groups", result.Diagnostics.Groups),
		zap.Int("conflicts", result.Diagnostics.Conflicts),
		zap.Int64("nodes", solution.Nodes),
		zap.Duration("elapsed", solution.Elapsed),
	)
	return result, nil
}
