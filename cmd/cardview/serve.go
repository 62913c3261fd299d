package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	cardviewmcp "github.com/gorewood/cardview/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run cardview as a Model Context Protocol (MCP) server over stdio.

This lets MCP-capable agents resolve and render cardview blocks and manage
global settings and templates.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "cardview": {
        "command": "cardview",
        "args": ["serve", "--vault", "/path/to/vault"]
      }
    }
  }

Available tools: resolve_block, render_block, get_settings, set_setting, list_templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			server := cardviewmcp.NewServer(buildVersion(), cardviewmcp.Deps{
				Vault:     a.vault,
				Templates: a.templates,
				Settings:  a.settings,
				Logger:    a.log,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
