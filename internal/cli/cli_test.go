package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/task-scheduler-api/internal/dto"
	"github.com/noah-isme/task-scheduler-api/internal/models"
	"github.com/noah-isme/task-scheduler-api/internal/service"
)

const fallbackRequest = `{
  "tasks": [
    {"task_name": "Morning Meeting", "hours_per_day": 1, "deadline": "2026-10-15"},
    {"task_name": "Project Work", "hours_per_day": 2, "deadline": "2026-10-20"},
    {"task_name": "chess", "hours_per_day": 2}
  ],
  "available_time": {"Monday": [{"start": "09:00", "end": "17:00"}]}
}`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSolveFromStdin(t *testing.T) {
	out, _, err := execute(t, fallbackRequest, "solve", "--input", "-", "--date", "2026-10-15", "--time-limit", "2s")
	require.NoError(t, err)

	var resp dto.ScheduleResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "fallback", resp.Status)
	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, "Monday", resp.Schedule[0].Day)
	assert.Equal(t, "Project Work", resp.Schedule[0].Tasks[1].TaskName)
	assert.Equal(t, "09:45", resp.Schedule[0].Tasks[1].StartTime)
	assert.Equal(t, 90.0, resp.ReducedHours["chess"])
}

func TestSolveFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks":[{"task_name":"read","hours_per_day":0.5}],"available_time":{"sunday":[{"start":"20:00","end":"21:00"}]}}`), 0o644))

	out, _, err := execute(t, "", "solve", "-i", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "success"`)
	assert.Contains(t, out, `"day": "Sunday"`)
}

func TestSolveRejectsBadInput(t *testing.T) {
	_, _, err := execute(t, `{"tasks":[{"task_name":"a","hours_per_day":1}],"available_time":{"Monday":[{"start":"9am","end":"17:00"}]}}`, "solve", "--input", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9am")

	_, _, err = execute(t, fallbackRequest, "solve", "--input", "-", "--date", "15/10/2026")
	require.Error(t, err)

	_, _, err = execute(t, "", "solve")
	require.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	out, errOut, err := execute(t, "", "token", "--secret", "s3cret", "--role", "admin", "--subject", "ops")
	require.NoError(t, err)
	assert.Contains(t, errOut, "expires ")

	auth := service.NewAuthService(zap.NewNop(), service.AuthConfig{AccessTokenSecret: "s3cret"})
	claims, err := auth.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "ops", claims.Subject)

	_, _, err = execute(t, "", "token", "--secret", "s3cret", "--role", "root")
	require.Error(t, err)
}
