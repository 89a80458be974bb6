package cmd

import (
	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/internal/outwriter"
	"github.com/spf13/cobra"
)

// rulesCmd displays the scoring rubric and the active ceilings.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Display the scoring rubric, role ceilings and severity mapping",
	Long: `Show every contribution category with its point value, the per-role
load ceilings, and the severity assigned to each violation kind.

No descriptors are read - this is purely informational.

Use this to:
- Explain a score to your team without reading the source
- Confirm threshold overrides from .cogload.yaml took effect
- Document the rubric in review guidelines

Examples:
  # Show default rules
  cogload rules

  # View with custom ceilings, as JSON
  cogload rules --config .cogload.yaml --format json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteRules(cfg); err != nil {
			contract.LogFatal("Cannot display rules", err)
		}
	},
}
