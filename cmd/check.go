package cmd

import (
	"github.com/huangsam/cogload/core"
	"github.com/huangsam/cogload/internal/cochange"
	"github.com/huangsam/cogload/internal/frontend"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [path ...]",
	Short: "Enforce load and cohesion ceilings for CI/CD pipelines (fails build on violations)",
	Long: `Run the same analysis as 'analyze' but print only a concise pass/fail
summary suitable for CI logs.

Use cases:
- Pull request gates - block merges that push a unit over its ceiling
- Release validation - ensure no scattered responsibilities before shipping
- Quality enforcement - keep role ceilings honest over time

Examples:
  # Gate on errors (default)
  cogload check ./model

  # Stricter gate including low cohesion warnings
  cogload check ./model --severity-threshold warning

  # Fail the build when any descriptor is unparseable
  cogload check ./model --strict-parse`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		source := cochange.NewSource(cfg.CoChangePath)
		return core.ExecuteCheck(rootCtx, cfg, frontend.NewAdapter(), source)
	},
}
