package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
)

type planOutput struct {
	Seed     int64            `json:"seed"`
	DayStart string           `json:"dayStart"`
	Days     []planner.Day    `json:"days"`
	Coverage planner.Coverage `json:"coverage"`
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a weekly timetable and print it as JSON",
		Args:  cobra.NoArgs,
		RunE:  runPlan,
	}
	cmd.Flags().String("input", "", "Path to the subjects and preferences JSON file")
	cmd.Flags().Int64("seed", 0, "Random seed for tie shuffling (0 picks one)")
	cmd.Flags().String("day-start", "", "First session start as HH:MM (overrides the file)")
	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("input")
	in, err := loadPlanInput(path)
	if err != nil {
		return err
	}
	flagStart, _ := cmd.Flags().GetString("day-start")
	start, err := in.dayStart(flagStart)
	if err != nil {
		return err
	}

	seed := resolveSeed(cmd)
	gen := planner.NewGenerator(planner.Config{Seed: seed, DayStart: &start})
	prefs := in.Preferences.Preferences
	days := gen.Generate(in.Subjects, prefs)
	coverage := planner.Summarize(in.Subjects, prefs, days)

	commandLogger(cmd).Debug("planned week",
		zap.Int64("seed", seed),
		zap.Int("subjects", len(in.Subjects)),
		zap.Int("placed", coverage.Placed),
		zap.Int("dropped", coverage.Dropped),
	)

	return writeJSON(cmd.OutOrStdout(), planOutput{
		Seed:     seed,
		DayStart: gen.DayStart().String(),
		Days:     days,
		Coverage: coverage,
	})
}
