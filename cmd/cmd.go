// Package cmd defines the command-line interface for cogload.
package cmd

import (
	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("role-marker-map", "", "Path to YAML file mapping ecosystem role markers to roles")
	rootCmd.PersistentFlags().String("co-change-source", "", "Optional co-change history (NDJSON file or SQLite database)")
	rootCmd.PersistentFlags().String("severity-threshold", string(schema.ErrorSeverity), "Minimum severity causing a non-zero exit: info, warning or error")
	rootCmd.PersistentFlags().String("format", string(schema.TextOut), "Output format: text or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("strict-parse", false, "Treat unparseable units as fatal (exit code 3)")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Float64("cohesion-floor", contract.DefaultCohesionFloor, "Cohesion ratio below which a unit is flagged")
	rootCmd.PersistentFlags().String("stream-policy", string(schema.PerStage), "Stream counting policy: per-stage or per-pipeline")
	rootCmd.PersistentFlags().String("aggregate-policy", string(schema.SumAggregate), "Entity/value-object aggregation: sum or max")
	rootCmd.PersistentFlags().Int("min-cochange", contract.DefaultMinCoChange, "Coordinated edits required before two units count as co-changing")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
