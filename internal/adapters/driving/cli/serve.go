package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-recall/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sercha-recall/internal/logger"
)

var serveHTTPAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration,
together with the maintenance scheduler when it is enabled.

By default, the server communicates over stdio using JSON-RPC. Use --http,
or set mcp.http_addr in the config file, to serve streamable HTTP instead.

Examples:
  # Stdio mode (for desktop assistants)
  recall serve

  # HTTP mode
  recall serve --http :8080

Assistant configuration:
  {
    "mcpServers": {
      "recall": {
        "command": "/path/to/recall",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "HTTP listen address (empty = stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Retrieval: retrievalService,
		Ingest:    ingestService,
		Document:  documentService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}
	server.SetDefaultK(defaultK)

	addr := serveHTTPAddr
	if addr == "" {
		addr = defaultHTTPAddr
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if scheduler != nil {
		g.Go(func() error {
			err := scheduler.Start(ctx)
			if ctx.Err() != nil {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		defer cancel()
		if addr != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})

	err = g.Wait()
	logger.Debug("serve: stopped")
	return err
}
