package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/metrics"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var transport, addr, endpoint string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio or SSE",
		RunE: func(cmd *cobra.Command, args []string) error {
			if transport != "" {
				a.cfg.MCP.Transport = transport
			}
			if addr != "" {
				a.cfg.MCP.Addr = addr
			}
			if endpoint != "" {
				a.cfg.MCP.SSEEndpoint = endpoint
			}
			return a.runMCP(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "transport to use: stdio or sse")
	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on when using SSE transport")
	cmd.Flags().StringVar(&endpoint, "sse-endpoint", "", "SSE endpoint path when using SSE transport")
	return cmd
}

func (a *app) runMCP(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := metrics.Setup(a.cfg.Metrics.Enabled, a.cfg.Metrics.Addr); err != nil {
		return fmt.Errorf("metrics setup: %w", err)
	}
	svc, err := a.service()
	if err != nil {
		return err
	}
	mcpServer := server.NewMCPServer(svc, a.logger)

	switch a.cfg.MCP.Transport {
	case "stdio":
		err = mcpServer.Run(ctx)
	case "sse":
		err = mcpServer.RunSSE(ctx, a.cfg.MCP.Addr, a.cfg.MCP.SSEEndpoint)
	default:
		return fmt.Errorf("unknown transport: %s (expected: stdio or sse)", a.cfg.MCP.Transport)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}
