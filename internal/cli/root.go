// Package cli implements the studymate command line tool, which plans a
// week offline from a JSON file without the API or a database.
package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewRootCmd builds the studymate command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "studymate",
		Short:        "Plan a weekly study timetable",
		Long:         "studymate lays out a seven-day study timetable from a subjects and preferences file.",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("verbose", false, "Log planning details to stderr")

	root.AddCommand(newPlanCmd())
	root.AddCommand(newRegenerateDayCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func commandLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(cmd.ErrOrStderr()),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// resolveSeed returns the --seed flag, or a clock-derived seed when unset so
// the printed plan can still be reproduced.
func resolveSeed(cmd *cobra.Command) int64 {
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
