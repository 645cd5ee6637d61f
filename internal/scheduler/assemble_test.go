package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleOrdersDaysAndStarts(t *testing.T) {
	schedule := Assemble([]Assignment{
		{Task: "b", Day: Friday, Start: 600, Duration: 30},
		{Task: "a", Day: Monday, Start: 660, Duration: 30},
		{Task: "c", Day: Monday, Start: 540, Duration: 60},
		{Task: "d", Day: Sunday, Start: 480, Duration: 30},
	})

	require.Len(t, schedule, 3)
	assert.Equal(t, Monday, schedule[0].Day)
	assert.Equal(t, Friday, schedule[1].Day)
	assert.Equal(t, Sunday, schedule[2].Day)
	require.Len(t, schedule[0].Assignments, 2)
	assert.Equal(t, "c", schedule[0].Assignments[0].Task)
	assert.Equal(t, "a", schedule[0].Assignments[1].Task)
}

func TestAssembleEmpty(t *testing.T) {
	assert.Empty(t, Assemble(nil))
}
