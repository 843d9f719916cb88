package cli

import (
	"github.com/spf13/cobra"

	"github.com/danielpiro/idf-reader/internal/consumption"
)

// consumptionParams holds the parameters for the consumption command.
type consumptionParams struct {
	edition   string
	location  string
	zone      string
	tablesDir string
}

// NewConsumptionCmd creates the "consumption" subcommand: a single
// compliance-table lookup.
func NewConsumptionCmd(a *app) *cobra.Command {
	var params consumptionParams

	cmd := &cobra.Command{
		Use:   "consumption",
		Short: "Look up a reference energy consumption figure",
		Long: `Look up the precomputed consumption figure for a standard edition,
usage-location row, and climate-zone column. A missing row or column is a
hard "not found" outcome, never a zero.`,
		Example: `  idfreader consumption --edition 2017 --location "Ground Floor & Intermediate ceiling" --zone A
  idfreader consumption --edition 2023 --location "Ground Floor & Intermediate ceiling" --zone 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeConsumption(cmd, a, params)
		},
	}

	cmd.Flags().StringVar(&params.edition, "edition", "", "Standard edition (2017, 2023, or office)")
	cmd.Flags().StringVar(&params.location, "location", "", "Usage-location row descriptor")
	cmd.Flags().StringVar(&params.zone, "zone", "", "Climate zone (A-D for 2017/office, 1-8 for 2023)")
	cmd.Flags().StringVar(&params.tablesDir, "tables", "", "Reference tables directory (defaults to config)")
	_ = cmd.MarkFlagRequired("edition")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("zone")
	return cmd
}

func executeConsumption(cmd *cobra.Command, a *app, params consumptionParams) error {
	edition, err := consumption.ParseEdition(params.edition)
	if err != nil {
		return err
	}

	dir := params.tablesDir
	if dir == "" {
		dir = a.cfg.Tables.Dir
	}

	tables := consumption.NewTableSet(consumption.WithLogger(a.log), consumption.WithMetrics(a.metrics))
	if err := tables.LoadDir(cmd.Context(), dir); err != nil {
		return err
	}

	value, err := tables.Lookup(edition, params.location, params.zone)
	if err != nil {
		return err
	}
	cmd.Printf("%g\n", value)
	return nil
}
