package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
)

type regenerateOutput struct {
	Seed int64       `json:"seed"`
	Day  planner.Day `json:"day"`
}

func newRegenerateDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regenerate-day",
		Short: "Plan a week, then reshuffle one day and print it",
		Args:  cobra.NoArgs,
		RunE:  runRegenerateDay,
	}
	cmd.Flags().String("input", "", "Path to the subjects and preferences JSON file")
	cmd.Flags().Int("day", 0, "Day to regenerate, 0 (Monday) to 6 (Sunday)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 picks one)")
	cmd.Flags().String("day-start", "", "First session start as HH:MM (overrides the file)")
	return cmd
}

func runRegenerateDay(cmd *cobra.Command, _ []string) error {
	dayOfWeek, _ := cmd.Flags().GetInt("day")
	if dayOfWeek < 0 || dayOfWeek >= planner.DaysPerWeek {
		return fmt.Errorf("--day must be between 0 and %d", planner.DaysPerWeek-1)
	}
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
	week := gen.Generate(in.Subjects, prefs)
	day := week[dayOfWeek].WithSessions(gen.RegenerateDay(week[dayOfWeek], in.Subjects, prefs))

	commandLogger(cmd).Debug("regenerated day",
		zap.Int64("seed", seed),
		zap.String("day", day.DayName),
		zap.Int("studies", day.StudyCount()),
	)

	return writeJSON(cmd.OutOrStdout(), regenerateOutput{Seed: seed, Day: day})
}
