// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tree

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// roleOf describes a node for display purposes.
func (t *Tree) roleOf(ski string) string {
	if isRoa, ok := t.IsROA(ski); ok && isRoa {
		return "roa"
	}
	if rec, ok := t.DataOf(ski); ok && rec.IsRoot() {
		return fmt.Sprintf("trust anchor (%s)", strings.ToUpper(rec.TAL))
	}
	if rirOwned, ok := t.IsRIROwned(ski); ok && rirOwned {
		return "rir umbrella"
	}
	if end, ok := t.IsEndNode(ski); ok && end {
		return "end node"
	}
	return "delegating ca"
}

// RenderTable renders a set of nodes as a formatted markdown table.
//
// It displays each node's SKI, role, CA domain, and self-owned resource
// counts in a tabular format using tablewriter. SKIs without a record render
// with "unresolved" placeholders instead of being dropped, so search output
// never silently loses a match.
//
// Parameters:
//   - skis: Nodes to display, one row each, in the given order
//
// Returns:
//   - string: Markdown table representation of the nodes
func (t *Tree) RenderTable(skis []string) string {
	if len(skis) == 0 {
		return "No matching nodes"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	headers := []string{"#", "SKI", "Role", "CA Domain", "v4", "v6", "ASNs"}
	table.Header(headers)

	var rows [][]string
	for i, ski := range skis {
		role := "unresolved"
		domain := "-"
		v4Count, v6Count, asnCount := "-", "-", "-"

		if _, ok := t.DataOf(ski); ok {
			role = t.roleOf(ski)
			if d, ok := t.CADomainOf(ski); ok {
				domain = d
			}
			if idx, ok := t.IndexOf(ski); ok {
				v4Count = fmt.Sprintf("%d", idx.V4.Size4())
				v6Count = fmt.Sprintf("%d", idx.V6.Size6())
				asnCount = fmt.Sprintf("%d", len(idx.ASNs))
			}
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ski,
			role,
			domain,
			v4Count,
			v6Count,
			asnCount,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// RenderPathTree renders a leaf-to-root path as an ASCII tree diagram,
// root first, with visual connectors and per-node role tags.
//
// Parameters:
//   - path: SKIs ordered leaf to root, as returned by PathToRoot
//
// Returns:
//   - string: ASCII tree representation of the path
func (t *Tree) RenderPathTree(path []string) string {
	if len(path) == 0 {
		return "No path to display"
	}

	var result strings.Builder
	for i := len(path) - 1; i >= 0; i-- {
		ski := path[i]
		depth := len(path) - 1 - i

		connector := "└── "
		if depth == 0 {
			connector = ""
		}

		result.WriteString(strings.Repeat("    ", max(depth-1, 0)))
		result.WriteString(connector)
		result.WriteString(fmt.Sprintf("%s (%s)\n", ski, t.roleOf(ski)))
	}
	return result.String()
}
