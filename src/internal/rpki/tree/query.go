// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tree

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/record"
)

// ErrCycleDetected is returned by PathToRoot when the parent chain loops
// through more than one node. The self-loop case is already cleared at
// insert time; longer cycles indicate broken upstream data hygiene.
var ErrCycleDetected = errors.New("parent cycle detected")

// rpkiClientConsole is the display URL template derived from a record's file path.
const rpkiClientConsole = "https://console.rpki-client.org/%s.html"

// ParentOf returns the parent SKI of ski. Roots and implicit placeholder
// entries report an empty parent with ok true; ok is false only for SKIs
// the tree has never seen at all.
func (t *Tree) ParentOf(ski string) (string, bool) {
	id, ok := t.bySKI[ski]
	if !ok {
		return "", false
	}
	pid := t.nodes[id].parent
	if pid == noNode {
		return "", true
	}
	return t.nodes[pid].ski, true
}

// ChildrenOf returns the child SKIs of ski in insertion order, or ok false
// for an unknown SKI.
func (t *Tree) ChildrenOf(ski string) ([]string, bool) {
	id, ok := t.bySKI[ski]
	if !ok {
		return nil, false
	}
	ids := t.nodes[id].children
	children := make([]string, len(ids))
	for i, cid := range ids {
		children[i] = t.nodes[cid].ski
	}
	return children, true
}

// DataOf returns the record for ski, or ok false when the SKI is unknown or
// only exists as an implicit placeholder.
func (t *Tree) DataOf(ski string) (*record.Record, bool) {
	id, ok := t.bySKI[ski]
	if !ok || t.nodes[id].rec == nil {
		return nil, false
	}
	return t.nodes[id].rec, true
}

// PathToRoot walks the parent chain upward from ski and returns the visited
// SKIs ordered leaf to root. The walk ends at a node without a parent. An
// unknown SKI yields an empty path. A visited-set guard catches multi-node
// parent cycles and returns the partial path with ErrCycleDetected.
func (t *Tree) PathToRoot(ski string) ([]string, error) {
	id, ok := t.bySKI[ski]
	if !ok {
		return nil, nil
	}

	var path []string
	visited := make(map[nodeID]struct{})
	for {
		if _, seen := visited[id]; seen {
			return path, fmt.Errorf("%w at %s", ErrCycleDetected, t.nodes[id].ski)
		}
		visited[id] = struct{}{}
		path = append(path, t.nodes[id].ski)

		pid := t.nodes[id].parent
		if pid == noNode {
			return path, nil
		}
		id = pid
	}
}

// RootsByTAL scans all nodes and returns a mapping from uppercased Trust
// Anchor Locator label to the root SKI carrying it, one entry per distinct
// TAL.
func (t *Tree) RootsByTAL() map[string]string {
	roots := make(map[string]string)
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.rec == nil || !n.rec.IsRoot() || n.ski == "" {
			continue
		}
		roots[strings.ToUpper(n.rec.TAL)] = n.ski
	}
	return roots
}

// ParseASN parses an ASN in either plain integer form ("65000") or textual
// form ("AS65000", case-insensitive).
func ParseASN(s string) (uint32, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) >= 2 && strings.EqualFold(trimmed[:2], "AS") {
		trimmed = trimmed[2:]
	}
	n, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid ASN %q: %w", s, err)
	}
	return uint32(n), nil
}

// SearchASN returns the SKIs of all indexed nodes whose self-owned ASN set
// contains asn, filtered by record kind unless the filter is FilterAll.
// Results follow arena insertion order, so repeated searches on the same
// tree are deterministic. Cost is linear in the number of indexed nodes.
func (t *Tree) SearchASN(asn uint32, filter Filter) []string {
	var matches []string
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.idx == nil || !n.idx.HasASN(asn) {
			continue
		}
		if filter.matches(n.rec.Kind) {
			matches = append(matches, n.ski)
		}
	}
	return matches
}

// SearchPrefix returns the SKIs of all indexed nodes whose self-owned
// prefix table covers pfx (exact or longest-prefix containment, not
// general subnet overlap). The address family of pfx selects the v4 or v6
// table. Results follow arena insertion order. Cost is linear in the number
// of indexed nodes times one trie lookup each.
func (t *Tree) SearchPrefix(pfx netip.Prefix, filter Filter) []string {
	var matches []string
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.idx == nil || !n.idx.CoversPrefix(pfx) {
			continue
		}
		if filter.matches(n.rec.Kind) {
			matches = append(matches, n.ski)
		}
	}
	return matches
}

// URLFor derives the rpki-client console display URL from the node's file
// path. It returns ok false instead of failing when the SKI is unknown or
// the record has no file.
func (t *Tree) URLFor(ski string) (string, bool) {
	rec, ok := t.DataOf(ski)
	if !ok || rec.File == "" {
		return "", false
	}
	return fmt.Sprintf(rpkiClientConsole, rec.File), true
}

// CADomainOf extracts the CA repository host for a node: the carepository
// field when present, otherwise the file path, with the transport scheme
// stripped and everything after the first path segment dropped. It returns
// ok false instead of failing when the SKI is unknown or neither field is
// set.
func (t *Tree) CADomainOf(ski string) (string, bool) {
	rec, ok := t.DataOf(ski)
	if !ok {
		return "", false
	}
	url := rec.CARepository
	if url == "" {
		url = rec.File
	}
	if url == "" {
		return "", false
	}
	if i := strings.Index(url, "://"); i >= 0 {
		url = url[i+3:]
	}
	host, _, _ := strings.Cut(url, "/")
	return host, true
}
