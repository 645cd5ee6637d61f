package scheduler

// Candidate is one placement the solver may activate: task, day, start and duration.
type Candidate struct {
	Task     int
	Day      Weekday
	Start    int
	Duration int
}

// End returns the exclusive end minute.
func (c Candidate) End() int {
	return c.Start + c.Duration
}

// DomainConfig controls the discretisation of availability.
type DomainConfig struct {
	Step      int
	Durations []int
}

// DayCandidates indexes the arena for a single day.
type DayCandidates struct {
	Day    Weekday
	All    []int
	ByTask [][]int
}

// Domain is the arena of candidate placements for one run, indexed per day and per
// (day, task) so constraint building never scans the whole arena.
type Domain struct {
	Candidates []Candidate
	Days       []DayCandidates
}

type candidateKey struct {
	task     int
	start    int
	duration int
}

// BuildDomain enumerates every candidate for every task inside every window, stepping
// starts by cfg.Step from the window start. Identical tuples from overlapping windows
// are kept once.
func BuildDomain(taskCount int, days []DayAvailability, cfg DomainConfig) *Domain {
	domain := &Domain{}
	if cfg.Step <= 0 {
		cfg.Step = DefaultSlotStep
	}
	if len(cfg.Durations) == 0 {
		cfg.Durations = DefaultDurations()
	}

	for _, day := range days {
		index := DayCandidates{Day: day.Day, ByTask: make([][]int, taskCount)}
		seen := make(map[candidateKey]struct{})
		for _, window := range day.Windows {
			for task := 0; task < taskCount; task++ {
				for _, duration := range cfg.Durations {
					for start := window.Start; start+duration <= window.End; start += cfg.Step {
						key := candidateKey{task: task, start: start, duration: duration}
						if _, dup := seen[key]; dup {
							continue
						}
						seen[key] = struct{}{}
						id := len(domain.Candidates)
						domain.Candidates = append(domain.Candidates, Candidate{
							Task:     task,
							Day:      day.Day,
							Start:    start,
							Duration: duration,
						})
						index.All = append(index.All, id)
						index.ByTask[task] = append(index.ByTask[task], id)
					}
				}
			}
		}
		domain.Days = append(domain.Days, index)
	}
	return domain
}
