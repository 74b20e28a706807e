// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides logging abstractions for the RPKI tree explorer.
// It supports both CLI mode with human-readable output and MCP server mode
// with structured JSON logging, allowing components such as the tree builder
// to receive an injected Logger instead of writing to a global sink.
package logger
