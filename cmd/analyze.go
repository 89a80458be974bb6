package cmd

import (
	"github.com/huangsam/cogload/core"
	"github.com/huangsam/cogload/internal/cochange"
	"github.com/huangsam/cogload/internal/frontend"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full analysis and prints the report.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path ...]",
	Short: "Score units for cognitive load, cohesion and responsibility drift",
	Long: `Analyze normalized unit descriptors and report every violation:
methods over their role ceiling, units whose members split into disjoint
usage groups, divergent-change clusters, and (with co-change history)
shotgun surgery candidates.

Examples:
  # Analyze the current directory with defaults
  cogload analyze

  # Gate on warnings too, as JSON
  cogload analyze ./model --severity-threshold warning --format json

  # Fold in co-change history exported from the VCS
  cogload analyze ./model --co-change-source cochange.ndjson`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		source := cochange.NewSource(cfg.CoChangePath)
		return core.ExecuteAnalyze(rootCtx, cfg, frontend.NewAdapter(), source)
	},
}
