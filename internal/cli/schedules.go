package cli

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danielpiro/idf-reader/internal/schedule"
)

// schedulesParams holds the parameters for the schedules command.
type schedulesParams struct {
	inputPath string
}

// NewSchedulesCmd creates the "schedules" subcommand: list the schedules
// that survive basic-type and setpoint filtering, deduplicated by rule
// content.
func NewSchedulesCmd(a *app) *cobra.Command {
	var params schedulesParams

	cmd := &cobra.Command{
		Use:     "schedules",
		Short:   "List filtered, deduplicated schedules",
		Example: `  idfreader schedules --input model.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeSchedules(cmd, a, params)
		},
	}

	cmd.Flags().StringVar(&params.inputPath, "input", "", "Path to the parsed model dataset (JSON)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func executeSchedules(cmd *cobra.Command, a *app, params schedulesParams) error {
	cache, err := loadCache(a, params.inputPath)
	if err != nil {
		return err
	}

	all, err := cache.Schedules(cmd.Context())
	if err != nil {
		return err
	}

	kept := schedule.Dedupe(all)
	cmd.Printf("%d of %d schedules kept\n\n", len(kept), len(all))
	for _, sc := range kept {
		cmd.Printf("%-40s %-20s rules=%d\n", sc.ID, sc.TypeLabel, len(sc.Rules))
		if a.log.GetLevel() <= zerolog.DebugLevel {
			cmd.Printf("  %s\n", strings.Join(sc.Rules, " | "))
		}
	}
	return nil
}
