package scheduler

import (
	"context"
	"time"
)

// SolveStatus is the outcome of a bounded search.
type SolveStatus string

const (
	SolveFeasible   SolveStatus = "feasible"
	SolveInfeasible SolveStatus = "infeasible"
	SolveUnknown    SolveStatus = "unknown"
)

// budgetCheckInterval is how many search steps pass between clock reads.
const budgetCheckInterval = 256

// Solution holds the chosen candidates, one per group, when Status is SolveFeasible.
type Solution struct {
	Status  SolveStatus
	Chosen  []int
	Nodes   int64
	Elapsed time.Duration
}

type search struct {
	model    *Model
	ctx      context.Context
	deadline time.Time

	eligible []bool
	blocked  []int
	live     []int
	assigned []int

	nodes   int64
	steps   int64
	expired bool
}

// Solve runs a depth-first search with forward checking over the model. Days share no
// constraints, so each day is searched on its own within the same time budget. Running
// out of time or a cancelled ctx yields SolveUnknown; no partial result is returned.
func Solve(ctx context.Context, model *Model, limit time.Duration) Solution {
	started := time.Now()
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	s := &search{
		model:    model,
		ctx:      ctx,
		deadline: started.Add(limit),
		eligible: make([]bool, len(model.Candidates)),
		blocked:  make([]int, len(model.Candidates)),
		live:     make([]int, len(model.Groups)),
		assigned: make([]int, len(model.Groups)),
	}

	for g, group := range model.Groups {
		s.assigned[g] = -1
		for _, c := range group.Members {
			if model.Candidates[c].Duration >= group.Required {
				s.eligible[c] = true
				s.live[g]++
			}
		}
		if s.live[g] == 0 {
			return Solution{Status: SolveInfeasible, Elapsed: time.Since(started)}
		}
	}

	for _, groups := range model.DayGroups {
		pending := make([]int, len(groups))
		copy(pending, groups)
		if !s.assign(pending) {
			status := SolveInfeasible
			if s.expired {
				status = SolveUnknown
			}
			return Solution{Status: status, Nodes: s.nodes, Elapsed: time.Since(started)}
		}
	}

	chosen := make([]int, 0, len(s.assigned))
	for _, c := range s.assigned {
		chosen = append(chosen, c)
	}
	return Solution{Status: SolveFeasible, Chosen: chosen, Nodes: s.nodes, Elapsed: time.Since(started)}
}

func (s *search) assign(pending []int) bool {
	if len(pending) == 0 {
		return true
	}
	if s.outOfBudget() {
		return false
	}

	pick := 0
	for i := 1; i < len(pending); i++ {
		if s.better(pending[i], pending[pick]) {
			pick = i
		}
	}
	group := pending[pick]
	rest := make([]int, 0, len(pending)-1)
	rest = append(rest, pending[:pick]...)
	rest = append(rest, pending[pick+1:]...)

	for _, c := range s.model.Groups[group].Members {
		if !s.eligible[c] || s.blocked[c] > 0 {
			continue
		}
		s.nodes++
		if s.place(c) {
			s.assigned[group] = c
			if s.assign(rest) {
				return true
			}
			s.assigned[group] = -1
		}
		s.unplace(c)
		if s.expired {
			return false
		}
	}
	return false
}

// better orders groups by fewest remaining options, then urgency, then creation order.
func (s *search) better(a, b int) bool {
	if s.live[a] != s.live[b] {
		return s.live[a] < s.live[b]
	}
	ra, rb := s.model.Groups[a].Rank, s.model.Groups[b].Rank
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// place blocks every candidate conflicting with c and reports false when some open group
// is left with no option. Blocks are applied in full either way so unplace can undo them.
func (s *search) place(c int) bool {
	ok := true
	for _, n := range s.model.conflicts[c] {
		s.blocked[n]++
		if s.blocked[n] != 1 || !s.eligible[n] {
			continue
		}
		g := s.model.groupOf[n]
		s.live[g]--
		if s.live[g] == 0 && s.assigned[g] == -1 {
			ok = false
		}
	}
	return ok
}

func (s *search) unplace(c int) {
	for _, n := range s.model.conflicts[c] {
		s.blocked[n]--
		if s.blocked[n] == 0 && s.eligible[n] {
			s.live[s.model.groupOf[n]]++
		}
	}
}

func (s *search) outOfBudget() bool {
	if s.expired {
		return true
	}
	s.steps++
	if s.steps%budgetCheckInterval != 1 {
		return false
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.expired = true
	} else if time.Now().After(s.deadline) {
		s.expired = true
	}
	return s.expired
}
