// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"net/netip"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/tree"
	"github.com/rpkideck/rpki-tree-explorer/src/logger"
)

// currentTree holds the live tree snapshot. The tree itself is immutable
// after build; reload builds a whole new tree and swaps the pointer, so
// concurrent tool calls never observe a partially-built structure.
var currentTree atomic.Pointer[tree.Tree]

// serverLog is the structured logger shared by the handlers. It is replaced
// by Run with a logger writing to stderr.
var serverLog logger.Logger = logger.NewMCPLogger(nil, true)

// defaultArchive is the snapshot path used when a reload gives no override.
var defaultArchive string

// ensureTree returns the live tree, building it from the configured archive
// on first use.
func ensureTree() (*tree.Tree, error) {
	if t := currentTree.Load(); t != nil {
		return t, nil
	}
	if defaultArchive == "" {
		return nil, fmt.Errorf("no archive configured: set defaults.archive or RPKI_TREE_ARCHIVE")
	}
	t, err := tree.Build(defaultArchive, serverLog)
	if err != nil {
		return nil, err
	}
	// A concurrent first call may have won the race; keep whichever
	// snapshot landed first.
	if !currentTree.CompareAndSwap(nil, t) {
		return currentTree.Load(), nil
	}
	return t, nil
}

// parseToolFilter validates the "type" tool argument.
func parseToolFilter(s string) (tree.Filter, error) {
	switch f := tree.Filter(s); f {
	case tree.FilterAll, tree.FilterCACert, tree.FilterROA:
		return f, nil
	default:
		return "", fmt.Errorf("invalid type %q: want all, ca_cert or roa", s)
	}
}

// handleSearchPrefix implements the search_prefix tool.
func handleSearchPrefix(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefixArg, err := request.RequireString("prefix")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prefix parameter required: %v", err)), nil
	}
	pfx, err := netip.ParsePrefix(strings.TrimSpace(prefixArg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid prefix: %v", err)), nil
	}
	filter, err := parseToolFilter(request.GetString("type", string(tree.FilterAll)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t, err := ensureTree()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load tree: %v", err)), nil
	}

	matches := t.SearchPrefix(pfx, filter)
	return mcp.NewToolResultText(t.RenderTable(matches)), nil
}

// handleSearchASN implements the search_asn tool.
func handleSearchASN(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	asnArg, err := request.RequireString("asn")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("asn parameter required: %v", err)), nil
	}
	asn, err := tree.ParseASN(asnArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filter, err := parseToolFilter(request.GetString("type", string(tree.FilterAll)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t, err := ensureTree()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load tree: %v", err)), nil
	}

	matches := t.SearchASN(asn, filter)
	return mcp.NewToolResultText(t.RenderTable(matches)), nil
}

// handlePathToRoot implements the path_to_root tool.
func handlePathToRoot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ski, err := request.RequireString("ski")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ski parameter required: %v", err)), nil
	}

	t, err := ensureTree()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load tree: %v", err)), nil
	}

	path, err := t.PathToRoot(ski)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(path) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("unknown SKI %s", ski)), nil
	}
	return mcp.NewToolResultText(t.RenderPathTree(path)), nil
}

// handleListRoots implements the list_roots tool.
func handleListRoots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := ensureTree()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load tree: %v", err)), nil
	}

	roots := t.RootsByTAL()
	tals := make([]string, 0, len(roots))
	for tal := range roots {
		tals = append(tals, tal)
	}
	sort.Strings(tals)

	var result strings.Builder
	for _, tal := range tals {
		fmt.Fprintf(&result, "%s: %s\n", tal, roots[tal])
	}
	if result.Len() == 0 {
		return mcp.NewToolResultText("No trust anchors in tree"), nil
	}
	return mcp.NewToolResultText(result.String()), nil
}

// handleNodeInfo implements the node_info tool.
func handleNodeInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ski, err := request.RequireString("ski")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ski parameter required: %v", err)), nil
	}

	t, err := ensureTree()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load tree: %v", err)), nil
	}

	rec, ok := t.DataOf(ski)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown SKI %s", ski)), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "SKI: %s\nKind: %s\n", ski, rec.Kind)
	if rec.IsRoot() {
		fmt.Fprintf(&result, "TAL: %s\n", strings.ToUpper(rec.TAL))
	}
	if parent, ok := t.ParentOf(ski); ok && parent != "" {
		fmt.Fprintf(&result, "Parent: %s\n", parent)
	}
	if children, ok := t.ChildrenOf(ski); ok {
		fmt.Fprintf(&result, "Children: %d\n", len(children))
	}
	if url, ok := t.URLFor(ski); ok {
		fmt.Fprintf(&result, "URL: %s\n", url)
	}
	if domain, ok := t.CADomainOf(ski); ok {
		fmt.Fprintf(&result, "CA domain: %s\n", domain)
	}
	result.WriteString(t.RenderTable([]string{ski}))
	return mcp.NewToolResultText(result.String()), nil
}

// handleReloadArchive implements the reload_archive tool. It builds a new
// tree and atomically replaces the live snapshot.
func handleReloadArchive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("archive", defaultArchive)
	if path == "" {
		return mcp.NewToolResultError("no archive configured: pass archive or set defaults.archive"), nil
	}

	t, err := tree.Build(path, serverLog)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rebuild failed, keeping previous tree: %v", err)), nil
	}
	currentTree.Store(t)

	s := t.Stats()
	return mcp.NewToolResultText(fmt.Sprintf(
		"Reloaded %s: %d nodes (%d CA certificates, %d ROAs), %d roots, %d indexed",
		path, s.Nodes, s.CACerts, s.ROAs, s.Roots, s.Indexed)), nil
}
