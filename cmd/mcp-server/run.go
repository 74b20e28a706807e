// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command mcp-server serves the RPKI tree query engine over the Model
// Context Protocol on stdio.
package main

import (
	"fmt"
	"os"

	mcpserver "github.com/rpkideck/rpki-tree-explorer/src/mcp-server"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = mcpserver.GetVersion()
	}
}

func main() {
	if err := mcpserver.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
