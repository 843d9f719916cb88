// Package cli wires the batch engine into a cobra command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danielpiro/idf-reader/internal/config"
	"github.com/danielpiro/idf-reader/internal/diag"
	"github.com/danielpiro/idf-reader/internal/logging"
	"github.com/danielpiro/idf-reader/internal/metrics"
	"github.com/danielpiro/idf-reader/internal/model"
	"github.com/danielpiro/idf-reader/internal/modelcache"
)

// app carries state shared by all commands: configuration, the logger, and
// the metrics recorder, built once in the root command's persistent pre-run.
// The standalone binary keeps its counters on a private registry; a host
// embedding the commands can swap in a scraped one.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	metrics *metrics.Recorder
}

// NewRootCmd creates the idfreader root command.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var configPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "idfreader",
		Short: "Query a building energy model and its compliance tables",
		Long: `idfreader loads the structured records of a building energy model
(zones, surfaces, constructions, materials, schedules, loads) into an
in-memory cache and answers area, schedule, and consumption queries over it.

Entity-level problems (dangling references, degenerate geometry) are
reported as warnings after the output; they never abort the run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			logger, err := logging.New(cfg.Logging.ToLogging())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger
			a.metrics = metrics.NewRecorder(prometheus.NewRegistry())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level override (trace, debug, info, warn, error)")

	cmd.AddCommand(NewInspectCmd(a))
	cmd.AddCommand(NewAreasCmd(a))
	cmd.AddCommand(NewConsumptionCmd(a))
	cmd.AddCommand(NewSchedulesCmd(a))
	return cmd
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// readDataset decodes the external parser's JSON output.
func readDataset(path string) (model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return model.Dataset{}, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return ds, nil
}

// loadCache builds a loaded cache from a dataset file. An empty dataset is
// fatal for the whole batch.
func loadCache(a *app, inputPath string) (*modelcache.Cache, error) {
	ds, err := readDataset(inputPath)
	if err != nil {
		return nil, err
	}
	cache := modelcache.New(modelcache.WithLogger(a.log), modelcache.WithMetrics(a.metrics))
	if err := cache.Load(ds); err != nil {
		return nil, fmt.Errorf("loading model cache: %w", err)
	}
	return cache, nil
}

// printWarnings renders collected diagnostics as a warnings section. The
// section is omitted when the run was clean.
func printWarnings(cmd *cobra.Command, diags *diag.Collector) {
	items := diags.Items()
	if len(items) == 0 {
		return
	}
	cmd.Println()
	cmd.Println("WARNINGS")
	cmd.Println("========")
	for _, d := range items {
		cmd.Println(d.String())
	}
}
