package cmd

import (
	"github.com/huangsam/doralens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the doralens MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents query DORA metrics through standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdout stays reserved for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newClient(cfg))
	},
}
