// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolHandler defines the signature for tool handlers that matches MCP
// server expectations.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolDefinition holds a tool definition and its handler.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
}

// createTools creates and returns all MCP tool definitions with their
// handlers.
//
// The function defines the following tools:
//   - search_prefix: Find certificates whose self-owned resources cover a prefix
//   - search_asn: Find certificates whose self-owned ASN set contains an ASN
//   - path_to_root: Walk the issuance chain from a node to its trust anchor
//   - list_roots: List trust anchor roots by TAL
//   - node_info: Show one node with classification and resource counts
//   - reload_archive: Rebuild the tree from the archive snapshot
//
// Each tool includes proper parameter definitions, descriptions, and default
// values as required by the MCP specification.
func createTools(config *Config) []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("search_prefix",
				mcp.WithDescription("Find RPKI certificates whose self-owned resources cover an IP prefix (longest-prefix-match containment)"),
				mcp.WithString("prefix",
					mcp.Required(),
					mcp.Description("IP prefix in CIDR notation, IPv4 or IPv6 (e.g. 10.0.0.0/8)"),
				),
				mcp.WithString("type",
					mcp.Description("Record-kind filter: 'all', 'ca_cert', or 'roa' (default: "+config.Defaults.ResourceType+")"),
					mcp.DefaultString(config.Defaults.ResourceType),
				),
			),
			Handler: handleSearchPrefix,
		},
		{
			Tool: mcp.NewTool("search_asn",
				mcp.WithDescription("Find RPKI certificates whose self-owned ASN set contains an ASN"),
				mcp.WithString("asn",
					mcp.Required(),
					mcp.Description("ASN in plain or textual form (e.g. 65000 or AS65000)"),
				),
				mcp.WithString("type",
					mcp.Description("Record-kind filter: 'all', 'ca_cert', or 'roa' (default: "+config.Defaults.ResourceType+")"),
					mcp.DefaultString(config.Defaults.ResourceType),
				),
			),
			Handler: handleSearchASN,
		},
		{
			Tool: mcp.NewTool("path_to_root",
				mcp.WithDescription("Walk the issuance chain from a certificate up to its trust anchor"),
				mcp.WithString("ski",
					mcp.Required(),
					mcp.Description("Subject Key Identifier of the starting node"),
				),
			),
			Handler: handlePathToRoot,
		},
		{
			Tool: mcp.NewTool("list_roots",
				mcp.WithDescription("List trust anchor root certificates, one per TAL"),
			),
			Handler: handleListRoots,
		},
		{
			Tool: mcp.NewTool("node_info",
				mcp.WithDescription("Show details for a single certificate or ROA: kind, parent, children, classification, resource counts"),
				mcp.WithString("ski",
					mcp.Required(),
					mcp.Description("Subject Key Identifier of the node"),
				),
			),
			Handler: handleNodeInfo,
		},
		{
			Tool: mcp.NewTool("reload_archive",
				mcp.WithDescription("Rebuild the tree from the archive snapshot, atomically replacing the live tree"),
				mcp.WithString("archive",
					mcp.Description("Archive path override; defaults to the configured snapshot"),
					mcp.DefaultString(config.Defaults.Archive),
				),
			),
			Handler: handleReloadArchive,
		},
	}
}
