// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the RPKI tree
// explorer. It implements a Cobra-based CLI with subcommands for listing
// trust anchor roots, rendering node-to-root paths, searching the resource
// indices by prefix or ASN, and inspecting single nodes. The package
// integrates with the logger package for output and error reporting.
package cli
