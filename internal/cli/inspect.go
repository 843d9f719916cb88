package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/danielpiro/idf-reader/internal/modelcache"
)

// inspectParams holds the parameters for the inspect command.
type inspectParams struct {
	inputPath    string
	withSections bool
}

// NewInspectCmd creates the "inspect" subcommand: load a dataset, report
// record counts and cache section status.
func NewInspectCmd(a *app) *cobra.Command {
	var params inspectParams

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load a model dataset and report cache status",
		Example: `  # Primary sections only
  idfreader inspect --input model.json

  # Force the lazy secondary sections to load as well
  idfreader inspect --input model.json --all-sections`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeInspect(cmd, a, params)
		},
	}

	cmd.Flags().StringVar(&params.inputPath, "input", "", "Path to the parsed model dataset (JSON)")
	cmd.Flags().BoolVar(&params.withSections, "all-sections", false,
		"Also load the lazy secondary sections (schedules, loads, windows)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func executeInspect(cmd *cobra.Command, a *app, params inspectParams) error {
	cache, err := loadCache(a, params.inputPath)
	if err != nil {
		return err
	}

	if params.withSections {
		ctx := cmd.Context()
		for _, section := range []string{
			modelcache.SectionSchedules, modelcache.SectionLoads, modelcache.SectionWindows,
		} {
			if err := cache.EnsureSection(ctx, section); err != nil {
				return err
			}
		}
	}

	cmd.Printf("Zones:         %d\n", len(cache.Zones()))
	cmd.Printf("Surfaces:      %d\n", len(cache.Surfaces()))
	cmd.Printf("Constructions: %d\n", len(cache.Constructions()))
	cmd.Printf("Materials:     %d\n", len(cache.Materials()))
	cmd.Println()
	cmd.Println("SECTIONS")
	cmd.Println("========")

	status := cache.Status()
	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Printf("%-15s %s\n", name, status[name])
	}
	return nil
}
