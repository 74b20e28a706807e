// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver implements a Model Context Protocol server that exposes
// the RPKI tree query engine as tools: prefix and ASN search, path-to-root
// walks, trust anchor listing, node inspection, and atomic snapshot reload.
// Communication happens over stdio; structured logs go to stderr.
package mcpserver
