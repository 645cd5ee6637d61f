package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testToday = time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(Config{TimeLimit: 2 * time.Second, Now: func() time.Time { return testToday }}, zap.NewNop())
}

func TestEngineRunFallsBackWhenBlocksTooLong(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Run(context.Background(), Input{
		Tasks: []Task{
			{Name: "Morning Meeting", HoursPerDay: 1, Deadline: "2026-10-15"},
			{Name: "Project Work", HoursPerDay: 2, Deadline: "2026-10-20"},
			{Name: "chess", HoursPerDay: 2},
		},
		Availability: map[string][]ClockWindow{
			"Monday": {{Start: "09:00", End: "17:00"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusFallback, result.Status)
	assert.Equal(t, "Using fallback manual allocation due to no optimal solution found", result.Message)
	assert.Equal(t, map[string]float64{"Morning Meeting": 45, "Project Work": 90, "chess": 90}, result.ReducedMinutes)
	assert.Equal(t, SolveInfeasible, result.Diagnostics.SolverStatus)

	require.Len(t, result.Schedule, 1)
	monday := result.Schedule[0]
	assert.Equal(t, Monday, monday.Day)
	require.Len(t, monday.Assignments, 3)

	got := make([]string, 0, 3)
	for _, a := range monday.Assignments {
		got = append(got, a.Task+" "+FormatClock(a.Start)+"-"+FormatClock(a.End()))
	}
	assert.Equal(t, []string{
		"Morning Meeting 09:00-09:45",
		"Project Work 09:45-11:15",
		"chess 11:15-12:45",
	}, got)
	assert.Equal(t, 1.0, monday.Assignments[0].Priority)
	assert.InDelta(t, 1.0/6, monday.Assignments[1].Priority, 1e-9)
}

func TestEngineRunSolves(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Run(context.Background(), Input{
		Tasks: []Task{
			{Name: "standup", HoursPerDay: 1},
			{Name: "email", HoursPerDay: 0.5},
		},
		Availability: map[string][]ClockWindow{
			"monday":    {{Start: "09:00", End: "12:00"}},
			"Wednesday": {{Start: "14:00", End: "16:00"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "Schedule created successfully", result.Message)
	require.Len(t, result.Schedule, 2)
	assert.Equal(t, Monday, result.Schedule[0].Day)
	assert.Equal(t, Wednesday, result.Schedule[1].Day)

	required := map[string]int{"standup": 45, "email": 30}
	for _, day := range result.Schedule {
		require.Len(t, day.Assignments, 2)
		for i, a := range day.Assignments {
			assert.GreaterOrEqual(t, a.Duration, required[a.Task])
			if i > 0 {
				assert.LessOrEqual(t, day.Assignments[i-1].End(), a.Start)
			}
		}
	}
	assert.Greater(t, result.Diagnostics.Candidates, 0)
	assert.Equal(t, 4, result.Diagnostics.Groups)
}

func TestEngineRunIsRepeatable(t *testing.T) {
	engine := newTestEngine()
	input := Input{
		Tasks: []Task{
			{Name: "gym", HoursPerDay: 1, Deadline: "2026-10-30"},
			{Name: "read", HoursPerDay: 0.5, Deadline: "2026-10-16"},
		},
		Availability: map[string][]ClockWindow{"Saturday": {{Start: "08:00", End: "10:00"}}},
	}

	first, err := engine.Run(context.Background(), input)
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, first.Schedule, second.Schedule)
}

func TestEngineRunRejectsBadInput(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Run(context.Background(), Input{
		Tasks:        []Task{{Name: "a", HoursPerDay: 1}},
		Availability: map[string][]ClockWindow{"Monday": {{Start: "9am", End: "17:00"}}},
	})
	assert.True(t, errors.Is(err, ErrInvalidTimeFormat))

	_, err = engine.Run(context.Background(), Input{
		Tasks:        []Task{{Name: "a", HoursPerDay: 1}},
		Availability: map[string][]ClockWindow{"Mon": {{Start: "09:00", End: "17:00"}}},
	})
	assert.True(t, errors.Is(err, ErrInvalidDay))
}

func TestEngineRunWithoutAvailability(t *testing.T) {
	result, err := newTestEngine().Run(context.Background(), Input{
		Tasks: []Task{{Name: "a", HoursPerDay: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Empty(t, result.Schedule)
}

func TestEngineRunUsesInputToday(t *testing.T) {
	result, err := newTestEngine().Run(context.Background(), Input{
		Tasks:        []Task{{Name: "a", HoursPerDay: 1, Deadline: "2026-12-01"}},
		Availability: map[string][]ClockWindow{"Monday": {{Start: "09:00", End: "10:00"}}},
		Today:        time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, result.Schedule, 1)
	assert.Equal(t, 1.0, result.Schedule[0].Assignments[0].Priority)
}
