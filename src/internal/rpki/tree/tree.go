// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tree

import (
	"strings"

	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/archive"
	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/record"
	"github.com/rpkideck/rpki-tree-explorer/src/logger"
)

// nodeID is a dense index into the tree's node arena.
type nodeID int32

// noNode marks an absent parent reference.
const noNode nodeID = -1

// node is one arena entry. rec stays nil for placeholder nodes that have
// been referenced as a parent but whose own record has not been seen yet.
type node struct {
	ski      string
	rec      *record.Record
	parent   nodeID
	children []nodeID
	idx      *Index // self-owned resources, nil unless indexed
}

// Tree is an immutable snapshot of the RPKI certificate hierarchy.
//
// Nodes live in an arena addressed by dense int32 IDs; a side map resolves
// SKI strings to IDs and edges are ID pairs, so the arena owns every node
// and traversal stays cache-friendly. A Tree has exactly one write phase,
// the build pass. Afterwards it is read-only and safe for concurrent
// queries without coordination; a new snapshot is loaded by building a
// whole new Tree and swapping it in, never by mutating this one.
type Tree struct {
	nodes []node
	bySKI map[string]nodeID
	log   logger.Logger
}

// New creates an empty tree that reports recoverable build anomalies to log.
// A nil log discards all output.
func New(log logger.Logger) *Tree {
	if log == nil {
		log = logger.NewMCPLogger(nil, true)
	}
	return &Tree{
		bySKI: make(map[string]nodeID),
		log:   log,
	}
}

// String returns a pipe-separated list of the tree's root SKIs.
func (t *Tree) String() string {
	roots := t.RootsByTAL()
	skis := make([]string, 0, len(roots))
	for _, ski := range roots {
		skis = append(skis, ski)
	}
	return strings.Join(skis, "|")
}

// intern returns the arena ID for ski, creating a placeholder node if the
// SKI has not been seen before.
func (t *Tree) intern(ski string) nodeID {
	if id, ok := t.bySKI[ski]; ok {
		return id
	}
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{ski: ski, parent: noNode})
	t.bySKI[ski] = id
	return id
}

// Insert adds one record to the tree under construction.
//
// Invariants maintained:
//   - SKI uniqueness: re-inserting an existing SKI is a no-op, logged.
//   - A record declaring itself as its own parent (ski == aki) is
//     reclassified as a root with no parent, logged.
//   - The parent SKI gets an implicit placeholder entry even before its own
//     record is seen, so parent lookups never fail on a forward reference;
//     input order is not guaranteed to be ancestor-before-descendant.
func (t *Tree) Insert(ski, aki string, rec *record.Record) {
	id := t.intern(ski)
	if t.nodes[id].rec != nil {
		t.log.Warnf("node with SKI %s already exists", ski)
		return
	}
	t.nodes[id].rec = rec

	if ski == aki {
		t.log.Warnf("node with SKI %s is its own parent", ski)
		return
	}
	if aki == "" {
		return
	}

	pid := t.intern(aki)
	t.nodes[pid].children = append(t.nodes[pid].children, id)
	t.nodes[id].parent = pid
}

// Build loads an archive snapshot and constructs the finished, indexed tree.
//
// Every ca_cert and roa record is inserted in file order (a missing AKI
// defaults to empty, making the node a root candidate); other record types
// were already dropped by the loader. The per-node resource indexes are then
// populated exactly once. Cost is O(N) insertion plus O(N × average
// fan-out) aggregation.
//
// Parameters:
//   - path: Archive file path (plain or gzip NDJSON)
//   - log: Destination for progress and anomaly warnings
//
// Returns:
//   - *Tree: The immutable, query-ready tree
//   - error: Archive I/O or parse failure (the whole build aborts)
func Build(path string, log logger.Logger) (*Tree, error) {
	t := New(log)

	records, err := archive.Load(path, t.log)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		t.Insert(rec.SKI, rec.AKI, rec)
	}
	t.PopulateIndexes()

	stats := t.Stats()
	t.log.Printf("Tree built with %d nodes (%d roots, %d indexed)",
		stats.Nodes, stats.Roots, stats.Indexed)
	return t, nil
}

// Stats summarizes a built tree for reporting.
type Stats struct {
	Nodes   int // nodes with a record (placeholders excluded)
	CACerts int
	ROAs    int
	Roots   int // nodes carrying a TAL
	Indexed int // nodes with a self-owned resource index
}

// Stats counts nodes, roots and indexed nodes in a single arena scan.
func (t *Tree) Stats() Stats {
	var s Stats
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.rec == nil {
			continue
		}
		s.Nodes++
		switch n.rec.Kind {
		case record.KindCACert:
			s.CACerts++
		case record.KindROA:
			s.ROAs++
		}
		if n.rec.IsRoot() {
			s.Roots++
		}
		if n.idx != nil {
			s.Indexed++
		}
	}
	return s
}
