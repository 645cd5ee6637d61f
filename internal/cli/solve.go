package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/task-scheduler-api/internal/dto"
	"github.com/noah-isme/task-scheduler-api/internal/scheduler"
	"github.com/noah-isme/task-scheduler-api/internal/service"
)

type solveOptions struct {
	input     string
	date      string
	timeLimit time.Duration
}

func newSolveCommand(newLogger func() *zap.Logger) *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build a schedule from a JSON request file and print the result",
		Example: `  scheduler-cli solve --input request.json
  cat request.json | scheduler-cli solve --input - --date 2026-10-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts, newLogger())
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "request file, or - for stdin")
	cmd.Flags().StringVar(&opts.date, "date", "", "today's date as YYYY-MM-DD (defaults to the current date)")
	cmd.Flags().DurationVar(&opts.timeLimit, "time-limit", scheduler.DefaultTimeLimit, "solver time budget")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runSolve(ctx context.Context, stdin io.Reader, out io.Writer, opts solveOptions, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	raw, err := readInput(opts.input, stdin)
	if err != nil {
		return err
	}
	var req dto.CreateScheduleRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	now := time.Now
	if opts.date != "" {
		today, err := time.Parse(scheduler.DeadlineLayout, opts.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", opts.date)
		}
		now = func() time.Time { return today }
	}

	engine := scheduler.NewEngine(scheduler.Config{TimeLimit: opts.timeLimit}, logger)
	svc := service.NewScheduleService(engine, nil, nil, nil, nil, nil, nil, nil, logger).WithClock(now)
	resp, err := svc.Create(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return raw, nil
}
