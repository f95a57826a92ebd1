package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexview/internal/adapters/driving/mcp"
	"github.com/custodia-labs/lexview/internal/renderers/html"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can render
entity and summary views.

Tools:
  render_entities - highlight spans over a text
  render_summary  - render summary sections
  annotate        - run the configured model and render both views

By default the server communicates over stdio using JSON-RPC. Use --port
to serve over HTTP instead, for example to test with MCP Inspector.

Examples:
  # Stdio mode (default)
  lexview mcp serve

  # HTTP mode
  lexview mcp serve --port 8081

Assistant configuration:
  {
    "mcpServers": {
      "lexview": {
        "command": "/path/to/lexview",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	c, err := loadComponents()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Annotation: c.service(html.New())})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
