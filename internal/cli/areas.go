package cli

import (
	"github.com/spf13/cobra"

	"github.com/danielpiro/idf-reader/internal/diag"
	"github.com/danielpiro/idf-reader/internal/grouping"
	"github.com/danielpiro/idf-reader/internal/resolve"
)

// areasParams holds the parameters for the areas command.
type areasParams struct {
	inputPath string
	storage   bool
}

// NewAreasCmd creates the "areas" subcommand: build and print the
// area / zone / construction hierarchy, or the storage-zone collection.
func NewAreasCmd(a *app) *cobra.Command {
	var params areasParams

	cmd := &cobra.Command{
		Use:   "areas",
		Short: "Build the area/zone/construction report structure",
		Example: `  # Normal area grouping
  idfreader areas --input model.json

  # Storage zones only
  idfreader areas --input model.json --storage`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeAreas(cmd, a, params)
		},
	}

	cmd.Flags().StringVar(&params.inputPath, "input", "", "Path to the parsed model dataset (JSON)")
	cmd.Flags().BoolVar(&params.storage, "storage", false, "Report storage zones instead of area groups")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func executeAreas(cmd *cobra.Command, a *app, params areasParams) error {
	cache, err := loadCache(a, params.inputPath)
	if err != nil {
		return err
	}

	diags := diag.NewCollector()
	resolver := resolve.New(cache, diags, a.metrics)
	engine := grouping.NewEngine(cache, resolver, diags, a.log)
	ctx := cmd.Context()

	if params.storage {
		storage, buildErr := engine.BuildStorageGroups(ctx)
		if buildErr != nil {
			return buildErr
		}
		cmd.Println("STORAGE ZONES")
		cmd.Println("=============")
		for _, zg := range storage.Zones {
			printZoneGroup(cmd, zg)
		}
		printWarnings(cmd, diags)
		return nil
	}

	result, buildErr := engine.BuildAreaGroups(ctx)
	if buildErr != nil {
		return buildErr
	}

	for _, area := range result.Areas {
		cmd.Printf("AREA %s\n", area.AreaID)
		for _, zg := range area.Zones {
			printZoneGroup(cmd, zg)
		}
	}
	if len(result.Unassigned) > 0 {
		cmd.Println("UNASSIGNED ZONES")
		for _, id := range result.Unassigned {
			cmd.Printf("  %s\n", id)
		}
	}
	printWarnings(cmd, diags)
	return nil
}

func printZoneGroup(cmd *cobra.Command, zg grouping.ZoneGroup) {
	cmd.Printf("  zone %s  floor_area=%.2f  multiplier=%d\n",
		zg.ZoneID, zg.FloorArea, zg.Multiplier)
	for _, cg := range zg.Constructions {
		avgU := 0.0
		if cg.TotalArea > 0 {
			avgU = cg.TotalAreaUValue / cg.TotalArea
		}
		cmd.Printf("    construction %-30s area=%.2f  avg_u=%.3f  elements=%d\n",
			cg.ConstructionID, cg.TotalArea, avgU, len(cg.Elements))
	}
}
