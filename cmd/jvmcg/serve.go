package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jvmcg/internal/mcpserver"
	"jvmcg/internal/obslog"
)

var serveLogFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analyzer as an MCP tool server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, cleanup, err := obslog.Setup(serveLogFile, false)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		defer cleanup()
		return mcpserver.Serve(context.Background(), logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "additionally write JSONL diagnostics to this file")
}
