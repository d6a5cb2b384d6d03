package main

import (
	"github.com/jonathan/resume-builder/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the resume to MCP clients over stdio (or HTTP with --http)",
	Args:  cobra.NoArgs,
	RunE:  withApp(runMCP),
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "Serve streamable HTTP on this address (e.g. ':8081') instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string, a *app) error {
	s := mcp.NewServer(a.store)

	if mcpHTTPAddr != "" {
		a.logger.Info("starting MCP server", zap.String("addr", mcpHTTPAddr))
		return server.NewStreamableHTTPServer(s).Start(mcpHTTPAddr)
	}
	return server.ServeStdio(s)
}
