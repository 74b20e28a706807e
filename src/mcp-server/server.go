// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rpkideck/rpki-tree-explorer/src/logger"
	"github.com/rpkideck/rpki-tree-explorer/src/version"
)

// serverName identifies this MCP server to clients.
const serverName = "RPKI Tree Explorer"

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server with RPKI tree query tools.
//
// Run loads configuration from the RPKI_TREE_CONFIG_FILE environment
// variable, registers the query tools, and serves the MCP protocol over
// stdio until the client disconnects or a termination signal arrives.
//
// The tree is built lazily on the first tool call and kept behind an atomic
// pointer; the reload_archive tool replaces it wholesale, never in place.
// Structured logs go to stderr so they cannot interfere with the stdio
// protocol on stdout.
//
// Parameters:
//   - version: Version string to report to MCP clients
//
// Returns:
//   - error: Configuration, server build, or runtime error; context.Canceled
//     after a signal-based shutdown
func Run(version string) error {
	appVersion = version

	config, err := loadConfig(os.Getenv("RPKI_TREE_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	defaultArchive = config.Defaults.Archive
	serverLog = logger.NewMCPLogger(os.Stderr, false)

	s := server.NewMCPServer(
		serverName,
		appVersion,
		server.WithToolCapabilities(true),
	)
	for _, tool := range createTools(config) {
		s.AddTool(tool.Tool, tool.Handler)
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ServeStdio(s)
	}()

	select {
	case <-ctx.Done():
		return context.Canceled
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	}
}
