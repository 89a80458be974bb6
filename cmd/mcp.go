package cmd

import (
	"github.com/huangsam/cogload/internal/frontend"
	"github.com/huangsam/cogload/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the cogload MCP server",
	Long:  `Launch an MCP server that allows AI agents to run load and cohesion analysis via standard tools.`,
	// Nothing may be printed outside the protocol here: stdio carries MCP.
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, frontend.NewAdapter())
	},
}
