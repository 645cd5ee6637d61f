package scheduler

import "sort"

// Demand is what the model needs to know about a task: its reduced daily minutes and its
// position in urgency order (0 = most urgent), used only to break search ties.
type Demand struct {
	Minutes int
	Rank    int
}

// Group is the coverage and single-choice constraint of one (day, task) pair: exactly one
// member is chosen and its duration must reach Required.
type Group struct {
	Day      Weekday
	Task     int
	Required int
	Rank     int
	Members  []int
}

// Model is the encoded constraint problem over a Domain.
type Model struct {
	Candidates []Candidate
	Groups     []Group
	DayGroups  [][]int

	groupOf   []int
	conflicts [][]int
	pairs     int
}

// BuildModel encodes coverage and single-choice per (day, task) pair, and mutual exclusion
// between overlapping candidates of different tasks on the same day.
func BuildModel(domain *Domain, demands []Demand) *Model {
	model := &Model{
		Candidates: domain.Candidates,
		groupOf:    make([]int, len(domain.Candidates)),
		conflicts:  make([][]int, len(domain.Candidates)),
	}
	for i := range model.groupOf {
		model.groupOf[i] = -1
	}

	for _, day := range domain.Days {
		var dayGroups []int
		for task, members := range day.ByTask {
			if len(members) == 0 {
				continue
			}
			ordered := make([]int, len(members))
			copy(ordered, members)
			sort.SliceStable(ordered, func(i, j int) bool {
				a, b := domain.Candidates[ordered[i]], domain.Candidates[ordered[j]]
				if a.Start == b.Start {
					return a.Duration < b.Duration
				}
				return a.Start < b.Start
			})
			id := len(model.Groups)
			model.Groups = append(model.Groups, Group{
				Day:      day.Day,
				Task:     task,
				Required: demands[task].Minutes,
				Rank:     demands[task].Rank,
				Members:  ordered,
			})
			for _, c := range ordered {
				model.groupOf[c] = id
			}
			dayGroups = append(dayGroups, id)
		}
		model.DayGroups = append(model.DayGroups, dayGroups)
		model.linkOverlaps(day.All)
	}
	return model
}

// linkOverlaps sweeps the day's candidates by start time and records every intersecting
// pair that belongs to different tasks.
func (m *Model) linkOverlaps(ids []int) {
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.SliceStable(sorted, func(i, j int) bool {
		return m.Candidates[sorted[i]].Start < m.Candidates[sorted[j]].Start
	})
	for i, a := range sorted {
		end := m.Candidates[a].End()
		for _, b := range sorted[i+1:] {
			if m.Candidates[b].Start >= end {
				break
			}
			if m.Candidates[a].Task == m.Candidates[b].Task {
				continue
			}
			m.conflicts[a] = append(m.conflicts[a], b)
			m.conflicts[b] = append(m.conflicts[b], a)
			m.pairs++
		}
	}
}

// Conflicts returns the candidates that cannot be chosen together with c.
func (m *Model) Conflicts(c int) []int {
	return m.conflicts[c]
}

// GroupOf returns the group owning candidate c.
func (m *Model) GroupOf(c int) int {
	return m.groupOf[c]
}

// ConflictPairs counts the mutual-exclusion constraints.
func (m *Model) ConflictPairs() int {
	return m.pairs
}
